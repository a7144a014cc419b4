package services

import (
	"context"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data
type AdminDashboardData struct {
	// User Statistics
	TotalUsers    int64 `json:"total_users"`
	TotalDonors   int64 `json:"total_donors"`
	TotalCreators int64 `json:"total_creators"`
	TotalGS       int64 `json:"total_gs_officers"`
	TotalDS       int64 `json:"total_ds_officers"`

	// Cause Statistics
	TotalCauses   int64            `json:"total_causes"`
	CausesByStage map[string]int64 `json:"causes_by_stage"`

	// Fundraising
	TotalRequired  float64 `json:"total_required"`
	TotalRaised    float64 `json:"total_raised"`
	TotalDonations int64   `json:"total_donations"`

	// Monthly Statistics
	DonationsThisMonth int64   `json:"donations_this_month"`
	AmountThisMonth    float64 `json:"amount_this_month"`

	// Recent Activity
	RecentDonations []DonationSummary `json:"recent_donations"`

	// Officer backlog
	TopOfficers []OfficerStats `json:"top_officers"`
}

// DonationSummary represents donation summary
type DonationSummary struct {
	ID            uint      `json:"id"`
	TransactionID string    `json:"transaction_id"`
	CauseTitle    string    `json:"cause_title"`
	Donor         string    `json:"donor"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// OfficerStats represents officer statistics
type OfficerStats struct {
	OfficerID  uint   `json:"officer_id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	TotalCases int64  `json:"total_cases"`
	Pending    int64  `json:"pending"`
}

var dashboardStages = []domain.Stage{
	domain.StagePendingAdmin,
	domain.StagePendingGS,
	domain.StagePendingDS,
	domain.StageApproved,
	domain.StagePublished,
	domain.StageCompleted,
	domain.StageRejected,
}

// GetAdminDashboard returns admin dashboard data
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	data := &AdminDashboardData{CausesByStage: make(map[string]int64, len(dashboardStages))}
	db := s.db.WithContext(ctx)

	// User counts by role
	if err := db.Table("users").Where("deleted_at IS NULL").Count(&data.TotalUsers).Error; err != nil {
		return nil, err
	}
	db.Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleDonor).Count(&data.TotalDonors)
	db.Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleCreator).Count(&data.TotalCreators)
	db.Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleGS).Count(&data.TotalGS)
	db.Table("users").Where("role = ? AND deleted_at IS NULL", domain.RoleDS).Count(&data.TotalDS)

	// Cause counts
	db.Table("causes").Count(&data.TotalCauses)
	for _, stage := range dashboardStages {
		var n int64
		cond, args := repositories.StageCondition(stage)
		db.Table("causes").Where(cond, args...).Count(&n)
		data.CausesByStage[string(stage)] = n
	}

	// Fundraising totals
	db.Table("causes").
		Where("is_published = ?", true).
		Select("COALESCE(SUM(required_amount), 0)").
		Scan(&data.TotalRequired)

	db.Table("causes").
		Select("COALESCE(SUM(funds_raised), 0)").
		Scan(&data.TotalRaised)

	db.Table("donations").Count(&data.TotalDonations)

	// This month statistics
	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	db.Table("donations").
		Where("created_at >= ?", startOfMonth).
		Count(&data.DonationsThisMonth)

	db.Table("donations").
		Where("created_at >= ?", startOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&data.AmountThisMonth)

	// Recent donations
	var recent []struct {
		ID            uint
		TransactionID string
		CauseTitle    string
		Donor         string
		Amount        float64
		CreatedAt     time.Time
	}
	db.Table("donations").
		Select("donations.id, donations.transaction_id, causes.title as cause_title, users.username as donor, donations.amount, donations.created_at").
		Joins("LEFT JOIN causes ON donations.cause_id = causes.id").
		Joins("LEFT JOIN users ON donations.donor_id = users.id").
		Order("donations.created_at DESC").
		Order("donations.id DESC").
		Limit(10).
		Scan(&recent)

	data.RecentDonations = make([]DonationSummary, len(recent))
	for i, d := range recent {
		data.RecentDonations[i] = DonationSummary{
			ID:            d.ID,
			TransactionID: d.TransactionID,
			CauseTitle:    d.CauseTitle,
			Donor:         d.Donor,
			Amount:        d.Amount,
			CreatedAt:     d.CreatedAt,
		}
	}

	// Officers with the most causes waiting on them
	var officers []struct {
		OfficerID  uint
		Username   string
		Role       string
		TotalCases int64
		Pending    int64
	}
	db.Table("users").
		Select(`
			users.id as officer_id,
			users.username,
			users.role,
			COUNT(causes.id) as total_cases,
			SUM(CASE WHEN causes.final_status = 'pending' AND (
				(users.role = 'gs' AND causes.gs_status = 'pending') OR
				(users.role = 'ds' AND causes.ds_status = 'pending' AND causes.gs_status = 'approved')
			) THEN 1 ELSE 0 END) as pending
		`).
		Joins("JOIN causes ON causes.gs_officer_id = users.id OR causes.ds_officer_id = users.id").
		Where("users.role IN ? AND users.deleted_at IS NULL", []string{string(domain.RoleGS), string(domain.RoleDS)}).
		Group("users.id, users.username, users.role").
		Order("pending DESC").
		Order("total_cases DESC").
		Limit(5).
		Scan(&officers)

	data.TopOfficers = make([]OfficerStats, len(officers))
	for i, o := range officers {
		data.TopOfficers[i] = OfficerStats{
			OfficerID:  o.OfficerID,
			Username:   o.Username,
			Role:       o.Role,
			TotalCases: o.TotalCases,
			Pending:    o.Pending,
		}
	}

	return data, nil
}

// ============================================================
// Creator Dashboard
// ============================================================

// CreatorDashboardData summarizes a creator's causes
type CreatorDashboardData struct {
	TotalCauses   int64            `json:"total_causes"`
	CausesByStage map[string]int64 `json:"causes_by_stage"`
	TotalRaised   float64          `json:"total_raised"`
	TotalDonors   int64            `json:"total_donors"`
}

// GetCreatorDashboard returns creator dashboard data
func (s *DashboardService) GetCreatorDashboard(ctx context.Context, creatorID uint) (*CreatorDashboardData, error) {
	data := &CreatorDashboardData{CausesByStage: make(map[string]int64, len(dashboardStages))}
	db := s.db.WithContext(ctx)

	if err := db.Table("causes").Where("creator_id = ?", creatorID).Count(&data.TotalCauses).Error; err != nil {
		return nil, err
	}
	for _, stage := range dashboardStages {
		var n int64
		cond, args := repositories.StageCondition(stage)
		db.Table("causes").Where("creator_id = ?", creatorID).Where(cond, args...).Count(&n)
		data.CausesByStage[string(stage)] = n
	}

	db.Table("causes").
		Where("creator_id = ?", creatorID).
		Select("COALESCE(SUM(funds_raised), 0)").
		Scan(&data.TotalRaised)

	db.Table("causes").
		Where("creator_id = ?", creatorID).
		Select("COALESCE(SUM(donors_count), 0)").
		Scan(&data.TotalDonors)

	return data, nil
}
