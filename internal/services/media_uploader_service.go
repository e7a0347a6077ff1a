package services

import "context"

// MediaUploader stores a base64 data URI with an external media service and
// returns the hosted URL; only the URL is ever persisted.
type MediaUploader interface {
	UploadImage(ctx context.Context, dataURI, folder string) (string, error)
	UploadPDF(ctx context.Context, dataURI, folder string) (string, error)
}
