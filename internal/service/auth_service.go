package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-records/internal/models"
	"hospital-records/internal/repository"
	"hospital-records/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid or revoked refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrUsernameTaken       = errors.New("username already exists")
)

// UserStore persists operator accounts and their refresh tokens.
type UserStore interface {
	FindUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User) error
	CreateRefreshToken(token *models.RefreshToken) error
	FindRefreshTokenByHash(hash string) (*models.RefreshToken, error)
	RevokeRefreshTokenByHash(hash string) error
}

type AuthService struct {
	userRepo  UserStore
	auditRepo AuditStore
	tokens    *utils.TokenManager
	log       *zap.Logger
}

func NewAuthService(userRepo UserStore, auditRepo AuditStore, tokens *utils.TokenManager, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		tokens:    tokens,
		log:       log,
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := s.tokens.GenerateRefreshToken()
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: time.Now().UTC().Add(s.tokens.RefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	if err := s.auditRepo.CreateAuditLog(&user.ID, models.ActionUserLogin, "", fmt.Sprintf("User %s logged in", username)); err != nil {
		s.log.Warn("Failed to write audit log", zap.String("action", models.ActionUserLogin), zap.Error(err))
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	token, err := s.userRepo.FindRefreshTokenByHash(utils.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if time.Now().After(token.ExpiresAt) {
		return "", ErrRefreshTokenExpired
	}

	accessToken, err := s.tokens.GenerateAccessToken(token.User.ID, token.User.Username, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(refreshToken string) error {
	if err := s.userRepo.RevokeRefreshTokenByHash(utils.HashRefreshToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Register creates a new operator account on behalf of an administrator
func (s *AuthService) Register(username, password, role string, actorID uint) (*UserResponse, error) {
	user, err := s.createUser(username, password, role)
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("User %s registered with role %s", username, role)
	if err := s.auditRepo.CreateAuditLog(&actorID, models.ActionUserRegister, "", details); err != nil {
		s.log.Warn("Failed to write audit log", zap.String("action", models.ActionUserRegister), zap.Error(err))
	}

	resp := userResponse(user)
	return &resp, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username is taken.
func (s *AuthService) EnsureAdmin(username, password string) error {
	_, err := s.createUser(username, password, models.RoleAdmin)
	if errors.Is(err, ErrUsernameTaken) {
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("Bootstrap administrator created", zap.String("username", username))
	return nil
}

func (s *AuthService) createUser(username, password, role string) (*models.User, error) {
	existing, err := s.userRepo.FindUserByUsername(username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func userResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
