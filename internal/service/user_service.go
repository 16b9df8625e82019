package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/auth"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/repository"
)

type UserService struct {
	Repo        *repository.UserRepository
	ProfileRepo *repository.ProfileRepository
}

func NewUserService(repo *repository.UserRepository, profileRepo *repository.ProfileRepository) *UserService {
	return &UserService{Repo: repo, ProfileRepo: profileRepo}
}

type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a user with a default learning profile and returns
// a signed token.
func (s *UserService) Register(ctx context.Context, username, password, email string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validationf("username and password are required")
	}

	existing, err := s.Repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Persistencef("look up username %q", username)
	}
	if existing != nil {
		return nil, apperr.Validationf("username %q is already taken", username)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hashPassword(password),
		Email:        email,
		CreatedAt:    now,
		LastLogin:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, apperr.Persistencef("store user")
	}

	profile := models.DefaultProfile(user.ID)
	profile.LastUpdated = now
	if err := s.ProfileRepo.Upsert(ctx, profile); err != nil {
		return nil, apperr.Persistencef("store default profile")
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.Repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, apperr.Persistencef("look up username %q", username)
	}
	if user == nil || user.PasswordHash != hashPassword(password) {
		return nil, apperr.Validationf("invalid username or password")
	}

	now := time.Now().UTC()
	if err := s.Repo.UpdateLastLogin(ctx, user.ID, now); err == nil {
		user.LastLogin = now
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFoundf("user %s", id)
	}
	return user, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
