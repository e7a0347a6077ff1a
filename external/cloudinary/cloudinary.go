package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CloudinaryUploader pushes base64 data URIs to Cloudinary's unsigned upload
// endpoint and returns the hosted URL. It implements services.MediaUploader.
type CloudinaryUploader struct {
	cloudName string
	preset    string
	client    *http.Client
	baseURL   string
}

func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cloud := os.Getenv("CLOUDINARY_CLOUD_NAME")
	if cloud == "" {
		return nil, errors.New("CLOUDINARY_CLOUD_NAME not set")
	}
	preset := os.Getenv("CLOUDINARY_UPLOAD_PRESET")
	if preset == "" {
		return nil, errors.New("CLOUDINARY_UPLOAD_PRESET not set")
	}

	return &CloudinaryUploader{
		cloudName: cloud,
		preset:    preset,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.cloudinary.com/v1_1",
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) upload(ctx context.Context, resourceType, dataURI, folder, publicID string) (string, error) {
	form := url.Values{}
	form.Set("file", dataURI)
	form.Set("upload_preset", u.preset)
	form.Set("folder", folder)
	if publicID != "" {
		form.Set("public_id", publicID)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/upload", u.baseURL, u.cloudName, resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 || out.SecureURL == "" {
		if out.Error.Message != "" {
			return "", errors.New("cloudinary upload failed: " + out.Error.Message)
		}
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Status)
	}
	return out.SecureURL, nil
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, dataURI, folder string) (string, error) {
	return u.upload(ctx, "image", dataURI, folder, "")
}

// UploadPDF uploads as a raw resource; Cloudinary requires an explicit
// public id for raw files to get a stable URL.
func (u *CloudinaryUploader) UploadPDF(ctx context.Context, dataURI, folder string) (string, error) {
	return u.upload(ctx, "raw", dataURI, folder, "tt_"+uuid.NewString())
}
