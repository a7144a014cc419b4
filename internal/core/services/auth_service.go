package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/jwt"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/password"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrUserNotFound         = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	ErrUserAlreadyExists    = fmt.Errorf("%w: username or email already registered", domain.ErrDuplicateEntry)
	ErrUserInactive         = fmt.Errorf("%w: user account is inactive", domain.ErrForbidden)
	ErrRoleNotSelfService   = fmt.Errorf("%w: only donor and creator accounts can sign up", domain.ErrForbidden)
	ErrWeakPassword         = fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	ErrInvalidEmail         = fmt.Errorf("%w: email address is invalid", domain.ErrInvalidInput)
	ErrInvalidUsername      = fmt.Errorf("%w: username must be 3 to 50 characters", domain.ErrInvalidInput)
	ErrCurrentPasswordWrong = fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	notifier *NotificationService
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	notifier *NotificationService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// SignupInput represents self registration input
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordInput represents a self password change. CurrentPassword may be
// omitted only while the account is flagged for a forced reset.
type ResetPasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresAt   time.Time            `json:"expires_at"`
}

// Signup registers a donor or creator
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.UserResponse, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}
	if !role.SelfRegistrable() {
		return nil, ErrRoleNotSelfService
	}

	username, email, err := normalizeIdentity(input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	if err := checkUnique(ctx, s.userRepo, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     string(role),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.notifier.NotifyWelcome(ctx, user)

	log.Printf("✅ User registered: %s (%s)", user.Username, user.Role)
	return user.ToResponse(), nil
}

// Login authenticates a user by email
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 3. Verify password
	if !password.Verify(input.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	// 4. Issue token
	token, expiresAt, err := jwt.GenerateAccessToken(jwt.Subject{
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		DistrictCode: user.DistrictCode,
		DivisionCode: user.DivisionCode,
		AreaCode:     user.AreaCode,
	}, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Username)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// ResetPassword changes the caller's password and clears the forced reset flag
func (s *AuthService) ResetPassword(ctx context.Context, userID uint, input *ResetPasswordInput) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if !password.ValidatePassword(input.NewPassword) {
		return ErrWeakPassword
	}

	if !user.MustResetPassword {
		if input.CurrentPassword == "" {
			return fmt.Errorf("%w: current password is required", domain.ErrInvalidInput)
		}
		if !password.Verify(input.CurrentPassword, user.Password) {
			return ErrCurrentPasswordWrong
		}
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.MustResetPassword = false
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password reset for user: %s", user.Username)
	return nil
}

// Me returns the caller's profile
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

func (s *AuthService) getUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// checkUnique rejects a username or email that is already taken
func checkUnique(ctx context.Context, repo repositories.UserRepository, username, email string) error {
	exists, err := repo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}

	exists, err = repo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}
	return nil
}

// normalizeIdentity trims and validates a username/email pair
func normalizeIdentity(username, email string) (string, string, error) {
	username = strings.TrimSpace(username)
	if n := len(username); n < 3 || n > 50 {
		return "", "", ErrInvalidUsername
	}

	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", "", ErrInvalidEmail
	}
	return username, email, nil
}
