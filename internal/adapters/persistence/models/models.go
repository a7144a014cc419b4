package models

import (
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// User represents users table
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Username          string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	Role              string         `gorm:"size:20;not null;index" json:"role"`
	DistrictCode      string         `gorm:"size:20;index" json:"district_code"`
	DistrictName      string         `gorm:"size:100" json:"district_name"`
	DivisionCode      string         `gorm:"size:20;index" json:"division_code"`
	DivisionName      string         `gorm:"size:100" json:"division_name"`
	AreaCode          string         `gorm:"size:20;index" json:"area_code"`
	AreaName          string         `gorm:"size:100" json:"area_name"`
	MustResetPassword bool           `gorm:"default:false" json:"must_reset_password"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID                uint      `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	DistrictCode      string    `json:"district_code,omitempty"`
	DistrictName      string    `json:"district_name,omitempty"`
	DivisionCode      string    `json:"division_code,omitempty"`
	DivisionName      string    `json:"division_name,omitempty"`
	AreaCode          string    `json:"area_code,omitempty"`
	AreaName          string    `json:"area_name,omitempty"`
	MustResetPassword bool      `json:"must_reset_password"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role,
		DistrictCode:      u.DistrictCode,
		DistrictName:      u.DistrictName,
		DivisionCode:      u.DivisionCode,
		DivisionName:      u.DivisionName,
		AreaCode:          u.AreaCode,
		AreaName:          u.AreaName,
		MustResetPassword: u.MustResetPassword,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
	}
}

// Hierarchy returns the user's administrative address
func (u *User) Hierarchy() domain.Hierarchy {
	return domain.Hierarchy{
		DistrictCode: u.DistrictCode,
		DistrictName: u.DistrictName,
		DivisionCode: u.DivisionCode,
		DivisionName: u.DivisionName,
		AreaCode:     u.AreaCode,
		AreaName:     u.AreaName,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Cause{},
		&Donation{},
		&CauseHistory{},
	)
}
