package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/password"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrNotAnOfficerRole  = fmt.Errorf("%w: officer role must be gs or ds", domain.ErrInvalidInput)
	ErrHierarchyRequired = fmt.Errorf("%w: district and division codes are required", domain.ErrInvalidInput)
	ErrAreaRequired      = fmt.Errorf("%w: area code is required for a GS officer", domain.ErrInvalidInput)
	ErrGSOfficerExists   = fmt.Errorf("%w: a GS officer already exists for this area", domain.ErrDuplicateEntry)
	ErrDSOfficerExists   = fmt.Errorf("%w: a DS officer already exists for this division", domain.ErrDuplicateEntry)
	ErrCannotDeleteAdmin = fmt.Errorf("%w: admin accounts cannot be deleted", domain.ErrForbidden)
	ErrOfficerHasCauses  = fmt.Errorf("%w: officer still has causes awaiting their decision", domain.ErrConflict)
	ErrInvalidRoleFilter = fmt.Errorf("%w: unknown role filter", domain.ErrInvalidInput)
)

// UserService handles user management business logic
type UserService struct {
	userRepo  repositories.UserRepository
	causeRepo repositories.CauseRepository
	notifier  *NotificationService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	causeRepo repositories.CauseRepository,
	notifier *NotificationService,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		causeRepo: causeRepo,
		notifier:  notifier,
	}
}

// AddOfficerInput represents officer provisioning input
type AddOfficerInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
	DivisionCode string `json:"division_code"`
	DivisionName string `json:"division_name"`
	AreaCode     string `json:"area_code"`
	AreaName     string `json:"area_name"`
}

// ListUsersInput represents list users input
type ListUsersInput struct {
	Role   string
	Offset int
	Limit  int
}

// AddOfficer provisions a GS or DS officer with a temporary password that
// is mailed to them. The account must change it on first sign in.
func (s *UserService) AddOfficer(ctx context.Context, role domain.Role, input *AddOfficerInput) (*models.UserResponse, error) {
	if !role.IsOfficer() {
		return nil, ErrNotAnOfficerRole
	}

	username, email, err := normalizeIdentity(input.Username, input.Email)
	if err != nil {
		return nil, err
	}

	h := domain.Hierarchy{
		DistrictCode: strings.TrimSpace(input.DistrictCode),
		DistrictName: strings.TrimSpace(input.DistrictName),
		DivisionCode: strings.TrimSpace(input.DivisionCode),
		DivisionName: strings.TrimSpace(input.DivisionName),
		AreaCode:     strings.TrimSpace(input.AreaCode),
		AreaName:     strings.TrimSpace(input.AreaName),
	}
	if h.DistrictCode == "" || h.DivisionCode == "" {
		return nil, ErrHierarchyRequired
	}
	if role == domain.RoleGS && h.AreaCode == "" {
		return nil, ErrAreaRequired
	}
	if role == domain.RoleDS {
		h.AreaCode, h.AreaName = "", ""
	}

	if err := checkUnique(ctx, s.userRepo, username, email); err != nil {
		return nil, err
	}
	if err := s.ensureSeatFree(ctx, role, h); err != nil {
		return nil, err
	}

	tempPassword, err := password.Temporary()
	if err != nil {
		return nil, err
	}
	hashedPassword, err := password.Hash(tempPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:          username,
		Email:             email,
		Password:          hashedPassword,
		Role:              string(role),
		DistrictCode:      h.DistrictCode,
		DistrictName:      h.DistrictName,
		DivisionCode:      h.DivisionCode,
		DivisionName:      h.DivisionName,
		AreaCode:          h.AreaCode,
		AreaName:          h.AreaName,
		MustResetPassword: true,
		IsActive:          true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.notifier.NotifyOfficerCredentials(ctx, user, tempPassword)

	log.Printf("✅ %s officer created: %s (%s/%s)", strings.ToUpper(user.Role), user.Username, user.DivisionCode, user.AreaCode)
	return user.ToResponse(), nil
}

// ensureSeatFree enforces one GS per (area, division) and one DS per division
func (s *UserService) ensureSeatFree(ctx context.Context, role domain.Role, h domain.Hierarchy) error {
	var err error
	var taken error
	switch role {
	case domain.RoleGS:
		_, err = s.userRepo.FindGSOfficer(ctx, h.AreaCode, h.DivisionCode)
		taken = ErrGSOfficerExists
	case domain.RoleDS:
		_, err = s.userRepo.FindDSOfficer(ctx, h.DivisionCode)
		taken = ErrDSOfficerExists
	default:
		return ErrNotAnOfficerRole
	}

	if err == nil {
		return taken
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// ListUsers lists users with pagination, optionally by role
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) ([]*models.UserResponse, int64, error) {
	role := ""
	if input.Role != "" {
		r, err := domain.ParseRole(input.Role)
		if err != nil {
			return nil, 0, ErrInvalidRoleFilter
		}
		role = string(r)
	}

	users, total, err := s.userRepo.List(ctx, role, input.Offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.UserResponse, len(users))
	for i, u := range users {
		out[i] = u.ToResponse()
	}
	return out, total, nil
}

// DeleteUser soft deletes a user. Admins are never deleted, and officers are
// kept while any in-flight cause is assigned to them.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return err
	}
	if role == domain.RoleAdmin {
		return ErrCannotDeleteAdmin
	}

	if role.IsOfficer() {
		active, err := s.causeRepo.CountActiveByOfficer(ctx, user.ID)
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrOfficerHasCauses
		}
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Printf("🗑️ User deleted: %s (%s)", user.Username, user.Role)
	return nil
}

// CreateAdmin provisions an admin account. It is used by the seeder and
// cmd/create-admin, never by an HTTP route.
func (s *UserService) CreateAdmin(ctx context.Context, username, email, plainPassword string) (*models.UserResponse, error) {
	username, email, err := normalizeIdentity(username, email)
	if err != nil {
		return nil, err
	}
	if !password.ValidatePassword(plainPassword) {
		return nil, ErrWeakPassword
	}
	if err := checkUnique(ctx, s.userRepo, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Admin user created: %s", user.Username)
	return user.ToResponse(), nil
}

// HasAdmin reports whether any admin account exists
func (s *UserService) HasAdmin(ctx context.Context) (bool, error) {
	_, total, err := s.userRepo.List(ctx, string(domain.RoleAdmin), 0, 1)
	return total > 0, err
}
