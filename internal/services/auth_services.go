package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

const (
	MinPasswordLen = 6

	otpValidity   = 10 * time.Minute
	resetValidity = time.Hour
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	Users      UserStore
	Validator  EmailValidator
	Mailer     EmailSender
	PowerEmail string // the single configured power-admin address

	log *zap.Logger
}

func NewAuthService(users UserStore, validator EmailValidator, mailer EmailSender, powerEmail string, log *zap.Logger) *AuthService {
	return &AuthService{Users: users, Validator: validator, Mailer: mailer, PowerEmail: powerEmail, log: log}
}

func validateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return ErrWeakPassword
	}
	return nil
}

// notify swallows mail errors: the state change already happened and must
// not be rolled back or surfaced because a notification failed.
func (s *AuthService) notify(kind, to string, err error) {
	if err != nil {
		s.log.Warn("email send failed", zap.String("kind", kind), zap.String("to", to), zap.Error(err))
	}
}

// Register creates an unverified account with a fresh OTP. The configured
// power-admin address gets role power; everyone else starts as user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword(password); err != nil {
		return err
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return err
	}

	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	otp, err := GenerateOTP()
	if err != nil {
		return err
	}

	role := model.RoleUser
	if s.PowerEmail != "" && email == s.PowerEmail {
		role = model.RolePower
	}

	expiry := time.Now().Add(otpValidity)
	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   false,
		OTP:          otp,
		OTPExpiry:    &expiry,
	}
	if _, err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return err
	}

	s.notify("otp", email, s.Mailer.SendOTPEmail(ctx, email, name, otp))
	return nil
}

// VerifyOTP consumes the code atomically; exactly one call per issued code
// can succeed. On a miss it diagnoses against a fresh read, in priority
// order: unknown account, already verified, bad/expired code.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) (*model.User, error) {
	if email == "" || otp == "" {
		return nil, ErrMissingFields
	}

	u, err := s.Users.VerifyOTP(ctx, email, otp, time.Now())
	if err == nil {
		s.notify("welcome", email, s.Mailer.SendWelcomeEmail(ctx, u.Email, u.Name))
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	fresh, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if fresh.IsVerified {
		return nil, ErrAlreadyVerified
	}
	return nil, ErrInvalidOTP
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}

	otp, err := GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.Users.SetOTP(ctx, email, otp, time.Now().Add(otpValidity)); err != nil {
		return err
	}

	s.notify("resend-otp", email, s.Mailer.SendResendOTPEmail(ctx, email, u.Name, otp))
	return nil
}

// Login returns the account on success; callers establish the session
// snapshot from it. The three failure modes are deliberately distinct.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	if !u.IsVerified {
		return nil, ErrEmailNotVerified
	}
	return u, nil
}

// ForgotPassword never reveals whether the address exists.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := GenerateOTP()
	if err != nil {
		return err
	}
	if err := s.Users.SetResetToken(ctx, u.ID, token, time.Now().Add(resetValidity)); err != nil {
		return err
	}

	s.notify("password-reset", email, s.Mailer.SendPasswordResetEmail(ctx, u.Email, u.Name, token))
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidReset
		}
		return err
	}
	if u.ResetPasswordToken == "" || u.ResetPasswordExpires == nil || u.ResetPasswordToken != token {
		return ErrInvalidResetCode
	}
	if u.ResetPasswordExpires.Before(time.Now()) {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Users.ResetPassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	s.notify("password-changed", email, s.Mailer.SendPasswordChangedEmail(ctx, u.Email, u.Name))
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	s.notify("password-changed", u.Email, s.Mailer.SendPasswordChangedEmail(ctx, u.Email, u.Name))
	return nil
}
