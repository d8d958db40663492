package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users and checks credentials. Token issuance
// lives in the HTTP layer.
type AuthService struct {
	store      repository.Store
	bcryptCost int
}

func NewAuthService(store repository.Store, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{store: store, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, Invalid("a valid email is required")
	}
	if len(password) < 8 {
		return nil, Invalid("password must be at least 8 characters")
	}

	if _, err := s.store.Users().FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
