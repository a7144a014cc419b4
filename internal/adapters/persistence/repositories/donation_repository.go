package repositories

import (
	"context"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// donationRepository implements DonationRepository interface
type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a new donation repository
func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

// CreateAndCredit records a donation and credits its cause in one transaction.
// The cause must be published and not completed when the row is written,
// otherwise ErrNoRowsAffected is returned and nothing is persisted.
func (r *donationRepository) CreateAndCredit(ctx context.Context, donation *models.Donation) (*models.Cause, error) {
	var cause models.Cause

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Cause{}).
			Where("id = ? AND is_published = ? AND is_completed = ?", donation.CauseID, true, false).
			Updates(map[string]interface{}{
				"funds_raised": gorm.Expr("funds_raised + ?", donation.Amount),
				"donors_count": gorm.Expr("donors_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoRowsAffected
		}

		if err := tx.Create(donation).Error; err != nil {
			return err
		}

		// Completion runs as its own statement so the comparison sees the
		// credited total on every dialect.
		now := time.Now()
		if err := tx.Model(&models.Cause{}).
			Where("id = ? AND is_completed = ? AND funds_raised >= required_amount", donation.CauseID, false).
			Updates(map[string]interface{}{
				"is_completed": true,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		return tx.First(&cause, donation.CauseID).Error
	})
	if err != nil {
		return nil, err
	}

	return &cause, nil
}

// ListByDonor lists a donor's donations, newest first
func (r *donationRepository) ListByDonor(ctx context.Context, donorID uint) ([]*models.Donation, error) {
	var donations []*models.Donation
	err := r.db.WithContext(ctx).
		Preload("Cause").
		Where("donor_id = ?", donorID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&donations).Error
	return donations, err
}

// TotalByDonor sums every donation made by a donor
func (r *donationRepository) TotalByDonor(ctx context.Context, donorID uint) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Donation{}).
		Where("donor_id = ?", donorID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
