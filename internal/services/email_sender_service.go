package services

import (
	"context"

	"github.com/beeynow/ADUSTECH/internal/model"
)

// EmailSender delivers the transactional campus mails. Implementations are
// best-effort collaborators; callers never fail a request on a send error.
type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
	SendOTPEmail(ctx context.Context, to, name, otp string) error
	SendResendOTPEmail(ctx context.Context, to, name, otp string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
	SendPasswordChangedEmail(ctx context.Context, to, name string) error
	SendRoleChangeEmail(ctx context.Context, to, name string, previous, next model.Role) error
}
