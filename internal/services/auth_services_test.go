package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beeynow/ADUSTECH/internal/model"
)

func newAuthService(users *fakeUserStore, mailer *fakeMailer, powerEmail string) *AuthService {
	return NewAuthService(users, NewLocalValidator(), mailer, powerEmail, zap.NewNop())
}

// register seeds an unverified account and returns the OTP stored for it.
func register(t *testing.T, svc *AuthService, users *fakeUserStore, name, email, password string) string {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), name, email, password))
	u, err := users.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.False(t, u.IsVerified)
	require.Len(t, u.OTP, 6)
	return u.OTP
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	svc := newAuthService(newFakeUserStore(), &fakeMailer{}, "")
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "", "ada@campus.edu", "secret1"), ErrMissingFields)
	assert.ErrorIs(t, svc.Register(ctx, "Ada", "not-an-email", "secret1"), ErrInvalidEmail)
	assert.ErrorIs(t, svc.Register(ctx, "Ada", "ada@campus.edu", "short"), ErrWeakPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada", "ada@campus.edu", "secret1"))
	assert.ErrorIs(t, svc.Register(ctx, "Ada Again", "ada@campus.edu", "secret2"), ErrUserExists)
}

func TestRegisterPowerEmailGetsPowerRole(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "root@campus.edu")
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Root", "root@campus.edu", "secret1"))
	require.NoError(t, svc.Register(ctx, "Ada", "ada@campus.edu", "secret1"))

	root, err := users.GetByEmail(ctx, "root@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, model.RolePower, root.Role)

	ada, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, ada.Role)
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := newAuthService(users, mailer, "")
	ctx := context.Background()

	otp := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")

	u, err := svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.Contains(t, mailer.kinds(), "welcome")

	// replaying the same code must fail, diagnosed as already verified
	_, err = svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestVerifyOTPDiagnosis(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	_, err := svc.VerifyOTP(ctx, "ghost@campus.edu", "123456")
	assert.ErrorIs(t, err, ErrUserNotFound)

	register(t, svc, users, "Ada", "ada@campus.edu", "secret1")
	_, err = svc.VerifyOTP(ctx, "ada@campus.edu", "000000")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestVerifyOTPRejectsExpired(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	otp := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")

	past := time.Now().Add(-time.Minute)
	require.NoError(t, users.SetOTP(ctx, "ada@campus.edu", otp, past))

	_, err := svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResendOTPReplacesCode(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := newAuthService(users, mailer, "")
	ctx := context.Background()

	first := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")
	require.NoError(t, svc.ResendOTP(ctx, "ada@campus.edu"))

	u, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	require.Len(t, u.OTP, 6)

	// the superseded code is dead even if it happens to differ
	if first != u.OTP {
		_, err = svc.VerifyOTP(ctx, "ada@campus.edu", first)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}
	_, err = svc.VerifyOTP(ctx, "ada@campus.edu", u.OTP)
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResendOTP(ctx, "ada@campus.edu"), ErrAlreadyVerified)
	assert.ErrorIs(t, svc.ResendOTP(ctx, "ghost@campus.edu"), ErrUserNotFound)
	assert.Contains(t, mailer.kinds(), "resend-otp")
}

func TestLoginFailureModesAreDistinct(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	otp := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")

	_, err := svc.Login(ctx, "ghost@campus.edu", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "ada@campus.edu", "wrong-password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = svc.Login(ctx, "ada@campus.edu", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	_, err = svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	require.NoError(t, err)

	u, err := svc.Login(ctx, "ada@campus.edu", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}

func TestForgotPasswordIsSilentForUnknownEmail(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := newAuthService(users, mailer, "")

	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@campus.edu"))
	assert.Empty(t, mailer.kinds())
}

func TestResetPasswordFlow(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	mailer := &fakeMailer{}
	svc := newAuthService(users, mailer, "")
	ctx := context.Background()

	otp := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")
	_, err := svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "ada@campus.edu"))
	u, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	require.Len(t, u.ResetPasswordToken, 6)

	assert.ErrorIs(t, svc.ResetPassword(ctx, "ada@campus.edu", "000000", "newsecret"), ErrInvalidResetCode)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "ghost@campus.edu", u.ResetPasswordToken, "newsecret"), ErrInvalidReset)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "ada@campus.edu", u.ResetPasswordToken, "tiny"), ErrWeakPassword)

	require.NoError(t, svc.ResetPassword(ctx, "ada@campus.edu", u.ResetPasswordToken, "newsecret"))

	// token is consumed
	assert.ErrorIs(t, svc.ResetPassword(ctx, "ada@campus.edu", u.ResetPasswordToken, "newsecret2"), ErrInvalidResetCode)

	_, err = svc.Login(ctx, "ada@campus.edu", "newsecret")
	assert.NoError(t, err)
	assert.Contains(t, mailer.kinds(), "password-changed")
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	register(t, svc, users, "Ada", "ada@campus.edu", "secret1")
	u, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(ctx, u.ID, "654321", time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, svc.ResetPassword(ctx, "ada@campus.edu", "654321", "newsecret"), ErrInvalidResetCode)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.DefaultCost)
	require.NoError(t, err)
	id, err := users.Create(ctx, &model.User{
		Name: "Ada", Email: "ada@campus.edu", PasswordHash: string(hash), Role: model.RoleUser, IsVerified: true,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, id, "wrong", "newsecret"), ErrIncorrectPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, id, "secret1", "tiny"), ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(ctx, id, "secret1", "newsecret"))

	_, err = svc.Login(ctx, "ada@campus.edu", "newsecret")
	assert.NoError(t, err)
}

func TestChangePasswordInvalidatesResetToken(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	svc := newAuthService(users, &fakeMailer{}, "")
	ctx := context.Background()

	otp := register(t, svc, users, "Ada", "ada@campus.edu", "secret1")
	_, err := svc.VerifyOTP(ctx, "ada@campus.edu", otp)
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "ada@campus.edu"))
	u, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	token := u.ResetPasswordToken
	require.Len(t, token, 6)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "secret1", "newsecret"))

	// a code issued before the change must not take over the account
	err = svc.ResetPassword(ctx, "ada@campus.edu", token, "attacker-pw")
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	_, err = svc.Login(ctx, "ada@campus.edu", "newsecret")
	assert.NoError(t, err)
}

func TestRegisterSucceedsWhenMailerFails(t *testing.T) {
	t.Parallel()
	users := newFakeUserStore()
	mailer := &fakeMailer{fail: true}
	svc := newAuthService(users, mailer, "")
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ada", "ada@campus.edu", "secret1"))
	u, err := users.GetByEmail(ctx, "ada@campus.edu")
	require.NoError(t, err)
	assert.NotEmpty(t, u.OTP)
}
