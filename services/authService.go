package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/models"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/Kariqs/littlelemon-api/utils"
)

type AuthService struct {
	Users  *repository.UserRepository
	Tokens *utils.TokenIssuer
}

func NewAuthService(users *repository.UserRepository, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, in models.RegisterData) (*models.User, error) {
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hash,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, in models.LoginData) (string, error) {
	user, err := s.Users.ByUsername(ctx, in.Username)
	if errors.Is(err, apperr.ErrUserNotFound) {
		return "", apperr.ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if err := utils.ComparePasswords(user.Password, in.Password); err != nil {
		return "", apperr.ErrBadCredentials
	}

	token, err := s.Tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Resolve turns a bearer token into a principal with its current roles.
// A token for a user that no longer exists is not authenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (Principal, error) {
	claims, err := s.Tokens.ValidateToken(token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", apperr.ErrNotAuthenticated, err)
	}

	user, err := s.Users.ByID(ctx, claims.UserID)
	if errors.Is(err, apperr.ErrUserNotFound) {
		return Principal{}, apperr.ErrNotAuthenticated
	}
	if err != nil {
		return Principal{}, err
	}

	roles, err := s.Users.RolesOf(ctx, user.ID)
	if err != nil {
		return Principal{}, err
	}

	return Principal{
		UserID:        user.ID,
		Username:      user.Username,
		Authenticated: true,
		Superuser:     user.IsSuperuser,
		Roles:         roles,
	}, nil
}

func (s *AuthService) Me(ctx context.Context, p Principal) (*models.User, error) {
	if !p.Authenticated {
		return nil, apperr.ErrNotAuthenticated
	}
	return s.Users.ByID(ctx, p.UserID)
}
