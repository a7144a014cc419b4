package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/config"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled jobs. Today that is the daily reminder to
// officers about causes waiting on them.
type CronService struct {
	cron      *cron.Cron
	causeRepo repositories.CauseRepository
	userRepo  repositories.UserRepository
	notifier  *NotificationService
	cfg       config.CronConfig
}

// NewCronService creates a new cron service
func NewCronService(
	causeRepo repositories.CauseRepository,
	userRepo repositories.UserRepository,
	notifier *NotificationService,
	cfg config.CronConfig,
) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithSeconds()),
		causeRepo: causeRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.cfg.ReminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		sent, err := s.SendPendingReminders(ctx)
		if err != nil {
			log.Printf("❌ Pending reminder job failed: %v", err)
			return
		}
		log.Printf("⏰ Pending reminders sent to %d officers", sent)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started (reminders: %s)", s.cfg.ReminderSpec)
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// SendPendingReminders mails every GS and DS officer whose causes have been
// waiting longer than the configured number of days. It returns how many
// officers were reminded.
func (s *CronService) SendPendingReminders(ctx context.Context) (int, error) {
	olderThan := time.Now().AddDate(0, 0, -s.cfg.ReminderAfterDays)
	sent := 0

	for _, stage := range []domain.Stage{domain.StagePendingGS, domain.StagePendingDS} {
		backlog, err := s.causeRepo.StaleBacklog(ctx, string(stage), olderThan)
		if err != nil {
			return sent, err
		}

		for _, b := range backlog {
			officer, err := s.userRepo.GetByID(ctx, b.OfficerID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return sent, err
			}
			s.notifier.NotifyPendingReminder(ctx, officer, b.Total, s.cfg.ReminderAfterDays)
			sent++
		}
	}

	return sent, nil
}
