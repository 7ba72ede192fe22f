package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/repository"
	"github.com/you/padel-booking/pkg/auth"
)

type AuthSvc struct {
	repo       *repository.UserRepo
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthSvc(r *repository.UserRepo, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthSvc {
	return &AuthSvc{repo: r, jwtSecret: jwtSecret, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *AuthSvc) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email and a password of 8+ chars required", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), FullName: fullName, Role: domain.RoleUser}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", fmt.Errorf("%w: bad credentials", domain.ErrForbidden)
	}
	access, err := auth.CreateAccessToken(s.jwtSecret, u.ID, string(u.Role), u.Email, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.CreateAccessToken(s.jwtSecret, u.ID, string(u.Role), u.Email, s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthSvc) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.ByID(ctx, id)
}

func (s *AuthSvc) UpdateProfile(ctx context.Context, id, fullName, level, imageURL string) (*domain.User, error) {
	u, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		u.FullName = fullName
	}
	if level != "" {
		u.Level = level
	}
	if imageURL != "" {
		u.ProfileImageURL = imageURL
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
