package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/beeynow/ADUSTECH/internal/model"
	"github.com/beeynow/ADUSTECH/internal/repository"
)

// AdminService implements the power-only role administration workflow.
// Caller authorization (role power) is enforced by the route middleware.
type AdminService struct {
	Users      UserStore
	Mailer     EmailSender
	PowerEmail string

	log *zap.Logger
}

func NewAdminService(users UserStore, mailer EmailSender, powerEmail string, log *zap.Logger) *AdminService {
	return &AdminService{Users: users, Mailer: mailer, PowerEmail: powerEmail, log: log}
}

func (s *AdminService) notify(kind, to string, err error) {
	if err != nil {
		s.log.Warn("email send failed", zap.String("kind", kind), zap.String("to", to), zap.Error(err))
	}
}

// CreateAdmin assigns an administrative role. An existing user-role account
// is promoted in place (credentials overwritten, marked verified); an
// account already holding a non-user role is rejected; an unknown email gets
// a new verified account with no OTP step.
func (s *AdminService) CreateAdmin(ctx context.Context, email, name, password string, role model.Role) (*model.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, ErrMissingFields
	}
	if role != model.RoleAdmin && role != model.RoleDAdmin {
		return nil, ErrInvalidRole
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	existing, err := s.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != model.RoleUser {
			return nil, ErrRoleAssigned
		}
		if err := s.Users.PromoteToAdmin(ctx, existing.ID, name, string(hash), role); err != nil {
			return nil, err
		}
		s.notify("role-change", email, s.Mailer.SendRoleChangeEmail(ctx, email, name, existing.Role, role))
		promoted := *existing
		promoted.Name = name
		promoted.Role = role
		promoted.IsVerified = true
		return &promoted, nil

	case errors.Is(err, repository.ErrNotFound):
		u := &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			IsVerified:   true,
		}
		if _, err := s.Users.Create(ctx, u); err != nil {
			return nil, err
		}
		s.notify("role-change", email, s.Mailer.SendRoleChangeEmail(ctx, email, name, model.RoleUser, role))
		return u, nil

	default:
		return nil, err
	}
}

// DemoteAdmin sets the target back to role user. The configured power
// address can never be demoted through this workflow.
func (s *AdminService) DemoteAdmin(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, ErrMissingFields
	}
	if s.PowerEmail != "" && email == s.PowerEmail {
		return nil, ErrDemotePower
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Role == model.RoleUser {
		return nil, ErrAlreadyUser
	}

	previous := u.Role
	if err := s.Users.UpdateRole(ctx, u.ID, model.RoleUser); err != nil {
		return nil, err
	}
	u.Role = model.RoleUser

	s.notify("role-change", email, s.Mailer.SendRoleChangeEmail(ctx, u.Email, u.Name, previous, model.RoleUser))
	return u, nil
}

// ListAdmins returns every account holding a role other than user.
func (s *AdminService) ListAdmins(ctx context.Context) ([]model.PublicUser, error) {
	admins, err := s.Users.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(admins))
	for i := range admins {
		out = append(out, admins[i].Public())
	}
	return out, nil
}
