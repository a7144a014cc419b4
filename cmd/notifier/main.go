// Command notifier consumes notification messages published by the API when
// NOTIFY_DRIVER=rabbitmq and delivers them by email.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	if cfg.Notify.RabbitURL == "" {
		log.Fatal("❌ RABBIT_URL is required")
	}

	var sender notify.Sender = notify.LogSender{}
	if cfg.SMTP.Host != "" {
		sender = notify.NewSMTPSender(notify.SMTPConfig(cfg.SMTP))
	} else {
		log.Println("⚠️ SMTP host not set, emails will be logged only")
	}

	consumer := notify.NewConsumer(cfg.Notify.Rabbit(), sender)
	if err := consumer.Connect(); err != nil {
		log.Fatalf("❌ Failed to connect to RabbitMQ: %v", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("📨 Notifier consuming %s", cfg.Notify.RabbitQueue)
	if err := consumer.Run(ctx); err != nil {
		log.Printf("❌ Consumer stopped: %v", err)
		return
	}
	log.Println("✅ Notifier stopped gracefully")
}
