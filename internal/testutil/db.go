// Package testutil provides shared helpers for database-backed tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq uint64

// NewDB opens an isolated in-memory SQLite database with every table migrated.
// The connection is closed when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named shared-cache database
	dsn := fmt.Sprintf("file:digibox_%d?mode=memory&cache=shared", atomic.AddUint64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with the given role and hierarchy.
// The stored password hash is not a valid bcrypt hash; use CreateUserWithHash
// when a test needs to log in.
func CreateUser(t *testing.T, db *gorm.DB, username string, role domain.Role, h domain.Hierarchy) *models.User {
	t.Helper()
	return CreateUserWithHash(t, db, username, role, h, "not-a-hash")
}

// CreateUserWithHash inserts a user with an explicit password hash
func CreateUserWithHash(t *testing.T, db *gorm.DB, username string, role domain.Role, h domain.Hierarchy, hash string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Password:     hash,
		Role:         string(role),
		DistrictCode: h.DistrictCode,
		DistrictName: h.DistrictName,
		DivisionCode: h.DivisionCode,
		DivisionName: h.DivisionName,
		AreaCode:     h.AreaCode,
		AreaName:     h.AreaName,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

// Colombo is a ready-made GS address used across tests
var Colombo = domain.Hierarchy{
	DistrictCode: "D01",
	DistrictName: "Colombo",
	DivisionCode: "DV01",
	DivisionName: "Thimbirigasyaya",
	AreaCode:     "A01",
	AreaName:     "Kirulapone",
}

// NewCause builds an unsaved cause for creatorID located at h
func NewCause(creatorID uint, h domain.Hierarchy, required float64) *models.Cause {
	return &models.Cause{
		CreatorID:        creatorID,
		Title:            "School supplies",
		Description:      "Books and uniforms for twenty children",
		RequiredAmount:   required,
		BeneficiaryName:  "Nimal Perera",
		BeneficiaryNIC:   "901234567V",
		BeneficiaryPhone: "0771234567",
		BankName:         "People's Bank",
		AccountNumber:    "1234567890",
		AccountHolder:    "Nimal Perera",
		DistrictCode:     h.DistrictCode,
		DistrictName:     h.DistrictName,
		DivisionCode:     h.DivisionCode,
		DivisionName:     h.DivisionName,
		AreaCode:         h.AreaCode,
		AreaName:         h.AreaName,
		EvidenceFile:     "uploads/evidence/test.pdf",
		EvidenceFileType: "application/pdf",
		AdminStatus:      string(domain.StatusPending),
		GSStatus:         string(domain.StatusPending),
		DSStatus:         string(domain.StatusPending),
		FinalStatus:      string(domain.StatusPending),
	}
}

// CreateCause inserts a cause, optionally mutated before saving
func CreateCause(t *testing.T, db *gorm.DB, cause *models.Cause, mutate ...func(*models.Cause)) *models.Cause {
	t.Helper()
	for _, m := range mutate {
		m(cause)
	}
	if err := db.Create(cause).Error; err != nil {
		t.Fatalf("Failed to create cause: %v", err)
	}
	return cause
}

// Published marks a cause fully approved and published
func Published(c *models.Cause) {
	c.AdminStatus = string(domain.StatusApproved)
	c.GSStatus = string(domain.StatusApproved)
	c.DSStatus = string(domain.StatusApproved)
	c.FinalStatus = string(domain.StatusApproved)
	c.IsPublished = true
	now := time.Now()
	c.PublishedAt = &now
}
