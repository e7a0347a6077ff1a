package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/beeynow/ADUSTECH/internal/model"
)

// ResendMailer sends the transactional campus emails through the Resend
// HTTP API. It implements services.EmailSender.
type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(from string) (*ResendMailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) send(ctx context.Context, to, subject, html string) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New("failed to send email: " + buf.String())
	}

	return nil
}

func (m *ResendMailer) SendWelcomeEmail(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Welcome to ADUSTECH - Let's Get Started!", fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your email is verified and your account is ready.</p>
		<p>Log in with %s to join your department channel and the campus feed.</p>
	`, name, to))
}

func (m *ResendMailer) SendOTPEmail(ctx context.Context, to, name, otp string) error {
	return m.send(ctx, to, "Your ADUSTECH Verification Code", fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<h1>%s</h1>
		<p>It expires in 10 minutes.</p>
	`, name, otp))
}

func (m *ResendMailer) SendResendOTPEmail(ctx context.Context, to, name, otp string) error {
	return m.send(ctx, to, "Your New ADUSTECH Verification Code", fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Here is your new verification code:</p>
		<h1>%s</h1>
		<p>It expires in 10 minutes. Previous codes no longer work.</p>
	`, name, otp))
}

func (m *ResendMailer) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	return m.send(ctx, to, "Reset Your ADUSTECH Password", fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Use this code to reset your password:</p>
		<h1>%s</h1>
		<p>It expires in 1 hour. If you did not request a reset, ignore this email.</p>
	`, name, token))
}

func (m *ResendMailer) SendPasswordChangedEmail(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Your ADUSTECH Password Has Been Changed", fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>The password for %s was just changed.</p>
		<p>If this wasn't you, reset your password immediately.</p>
	`, name, to))
}

func (m *ResendMailer) SendRoleChangeEmail(ctx context.Context, to, name string, previous, next model.Role) error {
	return m.send(ctx, to,
		fmt.Sprintf("Your ADUSTECH Role Changed: %s → %s", previous, next),
		fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account role changed from <b>%s</b> to <b>%s</b>.</p>
		<p>The change takes effect the next time you log in.</p>
	`, name, previous, next))
}
