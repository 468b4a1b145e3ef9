package service

import (
	"context"
	"errors"
	"fmt"

	"blog_backend/internal/common"
	"blog_backend/internal/common/security"
	"blog_backend/internal/domain/model"
	"blog_backend/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"-"` // Delivered as the session cookie only
}

func (s *AuthService) Register(ctx context.Context, req CredentialsRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrDuplicateUser on a taken username
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req CredentialsRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{ID: user.ID, Username: user.Username, Token: token}, nil
}
