package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation service errors
var (
	ErrCauseNotOpen       = fmt.Errorf("%w: cause is not open for donations", domain.ErrNotFound)
	ErrCauseCompleted     = fmt.Errorf("%w: cause has already reached its goal", domain.ErrConflict)
	ErrDonationNotApplied = fmt.Errorf("%w: cause changed while the donation was processed, please retry", domain.ErrConflict)
)

// DonationService records donations against published causes
type DonationService struct {
	donationRepo repositories.DonationRepository
	causeRepo    repositories.CauseRepository
	userRepo     repositories.UserRepository
	historyRepo  repositories.HistoryRepository
	notifier     *NotificationService
}

// NewDonationService creates a new donation service
func NewDonationService(
	donationRepo repositories.DonationRepository,
	causeRepo repositories.CauseRepository,
	userRepo repositories.UserRepository,
	historyRepo repositories.HistoryRepository,
	notifier *NotificationService,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		causeRepo:    causeRepo,
		userRepo:     userRepo,
		historyRepo:  historyRepo,
		notifier:     notifier,
	}
}

// DonateInput represents a donation request
type DonateInput struct {
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

// Receipt is returned to the donor and mailed to them
type Receipt struct {
	TransactionID string    `json:"transaction_id"`
	CauseID       uint      `json:"cause_id"`
	CauseTitle    string    `json:"cause_title"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	Date          time.Time `json:"date"`
	CauseComplete bool      `json:"cause_completed"`
}

// DonorHistory is a donor's ledger with their badge
type DonorHistory struct {
	Donations  []*models.DonationResponse `json:"donations"`
	Total      float64                    `json:"total"`
	Badge      domain.Badge               `json:"badge"`
	NextTarget float64                    `json:"next_target"`
}

// NewTransactionID returns TXN-<unix millis>-<8 hex chars>
func NewTransactionID(now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("TXN-%d-%s", now.UnixMilli(), id[:8])
}

// Donate records a donation and credits the cause atomically. The cause is
// completed by the donation that reaches its required amount.
func (s *DonationService) Donate(ctx context.Context, actor Actor, causeID uint, input *DonateInput) (*Receipt, error) {
	if !domain.ValidAmount(input.Amount) {
		return nil, ErrInvalidAmount
	}
	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	cause, err := s.causeRepo.GetByID(ctx, causeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCauseNotOpen
		}
		return nil, err
	}
	if !cause.IsPublished {
		return nil, ErrCauseNotOpen
	}
	if cause.IsCompleted {
		return nil, ErrCauseCompleted
	}

	now := time.Now()
	donation := &models.Donation{
		DonorID:       actor.UserID,
		CauseID:       cause.ID,
		Amount:        input.Amount,
		PaymentMethod: string(method),
		TransactionID: NewTransactionID(now),
		Status:        domain.DonationStatusSuccess,
	}

	credited, err := s.donationRepo.CreateAndCredit(ctx, donation)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			// Lost a race with the donation that completed the cause
			return nil, ErrDonationNotApplied
		}
		return nil, err
	}

	receipt := &Receipt{
		TransactionID: donation.TransactionID,
		CauseID:       cause.ID,
		CauseTitle:    cause.Title,
		Amount:        donation.Amount,
		PaymentMethod: donation.PaymentMethod,
		Date:          donation.CreatedAt,
		CauseComplete: credited.IsCompleted,
	}
	if receipt.Date.IsZero() {
		receipt.Date = now
	}

	if donor, err := s.userRepo.GetByID(ctx, actor.UserID); err == nil {
		s.notifier.NotifyDonationReceipt(ctx, donor, receipt)
	} else {
		log.Printf("⚠️ Receipt for %s not sent: %v", donation.TransactionID, err)
	}

	if credited.IsCompleted {
		s.onCompleted(ctx, actor, cause, credited)
	}

	log.Printf("💰 Donation %s: LKR %.2f to cause #%d by %s", donation.TransactionID, donation.Amount, cause.ID, actor.Username)
	return receipt, nil
}

// onCompleted records the completion and tells the creator
func (s *DonationService) onCompleted(ctx context.Context, actor Actor, before, after *models.Cause) {
	if err := s.historyRepo.Create(ctx, &models.CauseHistory{
		CauseID:     after.ID,
		Gate:        models.HistoryGateComplete,
		Action:      "complete",
		FromStage:   string(before.Stage()),
		ToStage:     string(after.Stage()),
		Remark:      fmt.Sprintf("LKR %.2f raised from %d donors", after.FundsRaised, after.DonorsCount),
		PerformedBy: actor.UserID,
		IPAddress:   actor.IP,
	}); err != nil {
		log.Printf("⚠️ Failed to record completion of cause %d: %v", after.ID, err)
	}

	if before.Creator != nil {
		s.notifier.NotifyCauseCompleted(ctx, after, before.Creator)
	}
	log.Printf("🎉 Cause #%d reached its goal", after.ID)
}

// History returns the donor's donations, lifetime total and badge
func (s *DonationService) History(ctx context.Context, donorID uint) (*DonorHistory, error) {
	donations, err := s.donationRepo.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	total, err := s.donationRepo.TotalByDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	out := make([]*models.DonationResponse, len(donations))
	for i, d := range donations {
		out[i] = d.ToResponse()
	}

	return &DonorHistory{
		Donations:  out,
		Total:      total,
		Badge:      domain.BadgeFor(total),
		NextTarget: domain.NextBadgeTarget(total),
	}, nil
}
