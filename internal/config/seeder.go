package config

import (
	"context"
	"log"
)

// devAdminPassword is only used in dev mode when SEED_ADMIN_PASSWORD is empty
const devAdminPassword = "admin123456"

// AdminCreator provisions admin accounts
type AdminCreator interface {
	HasAdmin(ctx context.Context) (bool, error)
	CreateAdmin(ctx context.Context, username, email, password string) error
}

// Seeder handles database seeding
type Seeder struct {
	admins AdminCreator
	cfg    *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(admins AdminCreator, cfg *Config) *Seeder {
	return &Seeder{admins: admins, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the first admin account.
// In production the password must come from SEED_ADMIN_PASSWORD.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	exists, err := s.admins.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	pass := s.cfg.Admin.Password
	if pass == "" {
		if !s.cfg.IsDev() {
			log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD is not set")
			log.Println("   Create an admin with cmd/create-admin")
			return nil
		}
		pass = devAdminPassword
	}

	return s.admins.CreateAdmin(ctx, s.cfg.Admin.Username, s.cfg.Admin.Email, pass)
}
