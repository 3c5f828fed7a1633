package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/novinbook/bookstore-backend/internal/users"
	"github.com/novinbook/bookstore-backend/pkg/config"
	"github.com/novinbook/bookstore-backend/pkg/db"
	"github.com/novinbook/bookstore-backend/pkg/db/models"
	pkgerrors "github.com/novinbook/bookstore-backend/pkg/errors"
	"github.com/novinbook/bookstore-backend/pkg/security"
)

// RegisterService creates user accounts.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error)
}

// RegisterServiceParams groups dependencies for registration.
type RegisterServiceParams struct {
	DB       *db.Client
	Password config.PasswordConfig
}

type registerService struct {
	db       *db.Client
	password config.PasswordConfig
}

// NewRegisterService builds the registration service.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &registerService{db: params.DB, password: params.Password}, nil
}

// Register hashes the password and creates the user plus an empty profile in
// one transaction. A duplicate email surfaces as a conflict.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return RegisterResponse{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := models.User{
		Email:        users.NormalizeEmail(req.Email),
		PasswordHash: hash,
		IsActive:     true,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		if err := repo.Create(ctx, &user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		profile := models.UserProfile{UserID: user.ID}
		if err := repo.CreateProfile(ctx, &profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}
		return nil
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	return RegisterResponse{User: users.UserFromModel(&user)}, nil
}
