package auth

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/internal/users"
	pkgauth "github.com/novinbook/bookstore-backend/pkg/auth"
	"github.com/novinbook/bookstore-backend/pkg/auth/session"
	"github.com/novinbook/bookstore-backend/pkg/config"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/security"
)

// Service exposes credential verification and session issuance.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
}

// SessionIssuer is the session-manager surface the service needs.
type SessionIssuer interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams groups dependencies for the auth service.
type ServiceParams struct {
	UserRepo *users.Repository
	Sessions SessionIssuer
	JWT      config.JWTConfig
	Clock    func() time.Time
}

type service struct {
	userRepo *users.Repository
	sessions SessionIssuer
	jwt      config.JWTConfig
	clock    func() time.Time
}

// NewService builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repo is required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		userRepo: params.UserRepo,
		sessions: params.Sessions,
		jwt:      params.JWT,
		clock:    clock,
	}, nil
}

// Login verifies credentials and issues an access token plus refresh session.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return LoginResponse{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResponse{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.clock()
	accessID := session.NewAccessID()
	accessToken, err := pkgauth.MintAccessToken(s.jwt, now, pkgauth.AccessTokenPayload{
		UserID: user.ID,
		JTI:    accessID,
	})
	if err != nil {
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return LoginResponse{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}

	return LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.UserFromModel(user),
	}, nil
}

// Logout revokes the refresh session behind the presented access token.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}
