package services

import "context"

// EmailValidator screens an address before an account is created.
type EmailValidator interface {
	Validate(ctx context.Context, email string) error
}

type LocalValidator struct{}

func NewLocalValidator() *LocalValidator {
	return &LocalValidator{}
}

func (v *LocalValidator) Validate(ctx context.Context, email string) error {
	// Format already checked by the auth service, so just accept
	return nil
}
