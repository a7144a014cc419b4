package repositories

import (
	"context"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// historyRepository implements HistoryRepository interface
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new cause history repository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// Create appends a history entry
func (r *historyRepository) Create(ctx context.Context, entry *models.CauseHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByCauseID gets the audit trail of a cause, oldest first
func (r *historyRepository) GetByCauseID(ctx context.Context, causeID uint) ([]*models.CauseHistory, error) {
	var entries []*models.CauseHistory
	err := r.db.WithContext(ctx).
		Preload("Performer").
		Where("cause_id = ?", causeID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}
