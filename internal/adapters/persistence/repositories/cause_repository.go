package repositories

import (
	"context"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// causeRepository implements CauseRepository interface
type causeRepository struct {
	db *gorm.DB
}

// NewCauseRepository creates a new cause repository
func NewCauseRepository(db *gorm.DB) CauseRepository {
	return &causeRepository{db: db}
}

// Create creates a new cause
func (r *causeRepository) Create(ctx context.Context, cause *models.Cause) error {
	return r.db.WithContext(ctx).Create(cause).Error
}

// GetByID gets a cause by ID with relations
func (r *causeRepository) GetByID(ctx context.Context, id uint) (*models.Cause, error) {
	var cause models.Cause
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("GSOfficer").
		Preload("DSOfficer").
		First(&cause, id).Error
	if err != nil {
		return nil, err
	}
	return &cause, nil
}

// List lists causes matching the filter with pagination
func (r *causeRepository) List(ctx context.Context, filter CauseFilter, offset, limit int) ([]*models.Cause, int64, error) {
	var causes []*models.Cause
	var total int64

	query := applyCauseFilter(r.db.WithContext(ctx).Model(&models.Cause{}), filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Creator").
		Preload("GSOfficer").
		Preload("DSOfficer").
		Order("created_at DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&causes).Error

	return causes, total, err
}

// applyCauseFilter translates a filter into WHERE clauses
func applyCauseFilter(query *gorm.DB, f CauseFilter) *gorm.DB {
	if f.CreatorID != nil {
		query = query.Where("creator_id = ?", *f.CreatorID)
	}
	if f.GSOfficerID != nil {
		query = query.Where("gs_officer_id = ?", *f.GSOfficerID)
	}
	if f.DSOfficerID != nil {
		query = query.Where("ds_officer_id = ?", *f.DSOfficerID)
	}
	if f.AdminStatus != "" {
		query = query.Where("admin_status = ?", f.AdminStatus)
	}
	if f.Published != nil {
		query = query.Where("is_published = ?", *f.Published)
	}
	if f.Completed != nil {
		query = query.Where("is_completed = ?", *f.Completed)
	}
	if f.Stage != "" {
		query = whereStage(query, domain.Stage(f.Stage))
	}
	return query
}

// whereStage mirrors domain.CauseState.Stage in SQL
func whereStage(query *gorm.DB, stage domain.Stage) *gorm.DB {
	cond, args := StageCondition(stage)
	if cond == "" {
		return query
	}
	return query.Where(cond, args...)
}

// StageCondition returns the WHERE clause selecting causes at stage.
// An unknown stage yields an empty condition.
func StageCondition(stage domain.Stage) (string, []interface{}) {
	pending := string(domain.StatusPending)
	approved := string(domain.StatusApproved)

	switch stage {
	case domain.StagePendingAdmin:
		return "admin_status = ? AND final_status = ?", []interface{}{pending, pending}
	case domain.StagePendingGS:
		return "admin_status = ? AND gs_status = ? AND final_status = ?", []interface{}{approved, pending, pending}
	case domain.StagePendingDS:
		return "gs_status = ? AND ds_status = ? AND final_status = ?", []interface{}{approved, pending, pending}
	case domain.StageApproved:
		return "final_status = ? AND is_published = ?", []interface{}{approved, false}
	case domain.StagePublished:
		return "is_published = ? AND is_completed = ?", []interface{}{true, false}
	case domain.StageCompleted:
		return "is_completed = ?", []interface{}{true}
	case domain.StageRejected:
		return "final_status = ?", []interface{}{string(domain.StatusRejected)}
	}
	return "", nil
}

// ApplyTransition writes workflow updates only if the stored status fields
// still match the snapshot the caller validated against. The history entry
// is written in the same transaction.
func (r *causeRepository) ApplyTransition(ctx context.Context, cause *models.Cause, updates map[string]interface{}, entry *models.CauseHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cause{}).
			Where("id = ?", cause.ID).
			Where("admin_status = ? AND gs_status = ? AND ds_status = ? AND final_status = ?",
				cause.AdminStatus, cause.GSStatus, cause.DSStatus, cause.FinalStatus).
			Where("is_published = ?", cause.IsPublished).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}

		if entry == nil {
			return nil
		}
		entry.CauseID = cause.ID
		return tx.Create(entry).Error
	})
}

// CountActiveByOfficer counts in-flight causes assigned to an officer
func (r *causeRepository) CountActiveByOfficer(ctx context.Context, officerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Cause{}).
		Where("gs_officer_id = ? OR ds_officer_id = ?", officerID, officerID).
		Where("final_status = ?", string(domain.StatusPending)).
		Count(&count).Error
	return count, err
}

// StaleBacklog groups causes stuck at a stage since before olderThan by officer
func (r *causeRepository) StaleBacklog(ctx context.Context, stage string, olderThan time.Time) ([]OfficerBacklog, error) {
	column := "gs_officer_id"
	if domain.Stage(stage) == domain.StagePendingDS {
		column = "ds_officer_id"
	}

	var rows []OfficerBacklog
	err := whereStage(r.db.WithContext(ctx).Model(&models.Cause{}), domain.Stage(stage)).
		Select(column+" AS officer_id, COUNT(*) AS total").
		Where(column+" IS NOT NULL").
		Where("updated_at < ?", olderThan).
		Group(column).
		Scan(&rows).Error
	return rows, err
}
