// Command create-admin provisions an admin account. Admins cannot sign up
// through the API.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/services"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"
)

func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password (min 8 characters)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("❌ -username, -email and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}

	// Admin creation sends no mail
	notifier := services.NewNotificationService(notify.NewDispatcher(notify.LogSender{}, 1, 1))
	userService := services.NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewCauseRepository(db),
		notifier,
	)

	admin, err := userService.CreateAdmin(context.Background(), *username, *email, *password)
	if err != nil {
		log.Fatalf("❌ Failed to create admin: %v", err)
	}
	log.Printf("✅ Admin %s (%s) ready", admin.Username, admin.Email)
}
