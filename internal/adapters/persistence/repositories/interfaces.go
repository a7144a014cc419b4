package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
)

// ErrNoRowsAffected is returned by conditional updates whose guard did not match
var ErrNoRowsAffected = errors.New("no rows affected")

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
	ListByRoles(ctx context.Context, roles ...string) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindGSOfficer(ctx context.Context, areaCode, divisionCode string) (*models.User, error)
	FindDSOfficer(ctx context.Context, divisionCode string) (*models.User, error)
}

// CauseFilter narrows cause listings
type CauseFilter struct {
	CreatorID   *uint
	GSOfficerID *uint
	DSOfficerID *uint
	AdminStatus string
	Stage       string
	Published   *bool
	Completed   *bool
}

// OfficerBacklog is the number of causes waiting on one officer
type OfficerBacklog struct {
	OfficerID uint
	Total     int64
}

// CauseRepository defines cause repository interface
type CauseRepository interface {
	Create(ctx context.Context, cause *models.Cause) error
	GetByID(ctx context.Context, id uint) (*models.Cause, error)
	List(ctx context.Context, filter CauseFilter, offset, limit int) ([]*models.Cause, int64, error)
	ApplyTransition(ctx context.Context, cause *models.Cause, updates map[string]interface{}, entry *models.CauseHistory) error
	CountActiveByOfficer(ctx context.Context, officerID uint) (int64, error)
	StaleBacklog(ctx context.Context, stage string, olderThan time.Time) ([]OfficerBacklog, error)
}

// DonationRepository defines donation repository interface
type DonationRepository interface {
	CreateAndCredit(ctx context.Context, donation *models.Donation) (*models.Cause, error)
	ListByDonor(ctx context.Context, donorID uint) ([]*models.Donation, error)
	TotalByDonor(ctx context.Context, donorID uint) (float64, error)
}

// HistoryRepository defines cause history repository interface
type HistoryRepository interface {
	Create(ctx context.Context, entry *models.CauseHistory) error
	GetByCauseID(ctx context.Context, causeID uint) ([]*models.CauseHistory, error)
}
