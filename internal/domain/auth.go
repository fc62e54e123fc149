package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/internal/model"
	"github.com/wanderlands/backend/internal/repository"
	"github.com/wanderlands/backend/pkg/authenticator"
	"github.com/wanderlands/backend/pkg/errorx"
	"github.com/wanderlands/backend/pkg/xcontext"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo    repository.UserRepository
	tokenEngine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	tokenEngine authenticator.TokenEngine[model.AccessToken],
) *authDomain {
	return &authDomain{
		userRepo:    userRepo,
		tokenEngine: tokenEngine,
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errorx.New(errorx.BadRequest, "Username and password are required")
	}

	taken, err := d.userRepo.IsUsernameTaken(ctx, req.Username)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check username: %v", err)
		return nil, errorx.Unknown
	}

	if taken {
		return nil, errorx.New(errorx.AlreadyExists, "Username %s is taken", req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	err = d.userRepo.Create(ctx, &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterResponse{}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password))
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid username or password")
	}

	token, err := d.tokenEngine.Generate(user.ID, model.AccessToken{
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: token}, nil
}
