package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/testutil"
)

func TestNewTransactionID(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	id := NewTransactionID(now)

	if !regexp.MustCompile(`^TXN-1700000000123-[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("transaction id = %q", id)
	}
	if NewTransactionID(now) == id {
		t.Errorf("transaction ids repeat")
	}
}

func TestDonate_Validation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	donor := testutil.CreateUser(t, e.db, "donor", domain.RoleDonor, domain.Hierarchy{})
	live := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), testutil.Published)
	pending := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000))

	tests := []struct {
		name    string
		causeID uint
		input   DonateInput
		wantErr error
	}{
		{"zero amount", live.ID, DonateInput{Amount: 0, PaymentMethod: "Card"}, ErrInvalidAmount},
		{"negative amount", live.ID, DonateInput{Amount: -5, PaymentMethod: "Card"}, ErrInvalidAmount},
		{"fraction of a cent", live.ID, DonateInput{Amount: 0.001, PaymentMethod: "Card"}, ErrInvalidAmount},
		{"half cent", live.ID, DonateInput{Amount: 10.005, PaymentMethod: "Card"}, ErrInvalidAmount},
		{"above column range", live.ID, DonateInput{Amount: domain.MaxAmount * 10, PaymentMethod: "Card"}, ErrInvalidAmount},
		{"unknown method", live.ID, DonateInput{Amount: 100, PaymentMethod: "Cash"}, domain.ErrInvalidPaymentMethod},
		{"missing cause", 9999, DonateInput{Amount: 100, PaymentMethod: "Card"}, ErrCauseNotOpen},
		{"unpublished cause", pending.ID, DonateInput{Amount: 100, PaymentMethod: "Card"}, ErrCauseNotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.donation.Donate(ctx, actorFor(donor), tt.causeID, &tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, _ := e.causes.GetByID(ctx, live.ID)
	if got.FundsRaised != 0 || got.DonorsCount != 0 {
		t.Errorf("rejected donations changed the cause: raised=%.2f donors=%d", got.FundsRaised, got.DonorsCount)
	}
}

func TestDonate_CompletesAndThenRefuses(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	donor := testutil.CreateUser(t, e.db, "donor", domain.RoleDonor, domain.Hierarchy{})
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), testutil.Published)

	receipt, err := e.donation.Donate(ctx, actorFor(donor), cause.ID, &DonateInput{Amount: 600, PaymentMethod: "Bank Transfer"})
	if err != nil {
		t.Fatalf("first donation: %v", err)
	}
	if receipt.CauseComplete || receipt.CauseTitle != cause.Title || receipt.PaymentMethod != "Bank Transfer" {
		t.Errorf("first receipt = %+v", receipt)
	}
	if !hasSubject(e.queue.sentTo(donor.Email), "Thank you") {
		t.Errorf("donor receipt not queued")
	}

	receipt, err = e.donation.Donate(ctx, actorFor(donor), cause.ID, &DonateInput{Amount: 600, PaymentMethod: "Card"})
	if err != nil {
		t.Fatalf("second donation: %v", err)
	}
	if !receipt.CauseComplete {
		t.Errorf("overshooting donation did not complete the cause")
	}

	_, err = e.donation.Donate(ctx, actorFor(donor), cause.ID, &DonateInput{Amount: 10, PaymentMethod: "Card"})
	if !errors.Is(err, ErrCauseCompleted) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("donation to completed cause error = %v, want ErrCauseCompleted", err)
	}

	got, _ := e.causes.GetByID(ctx, cause.ID)
	if got.FundsRaised != 1200 || got.DonorsCount != 2 || !got.IsCompleted || got.CompletedAt == nil {
		t.Errorf("cause = raised:%.2f donors:%d completed:%v", got.FundsRaised, got.DonorsCount, got.IsCompleted)
	}
	if !hasSubject(e.queue.sentTo(creator.Email), "reached its goal") {
		t.Errorf("creator not told about completion")
	}
}

func TestDonorHistoryAndBadges(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	donor := testutil.CreateUser(t, e.db, "donor", domain.RoleDonor, domain.Hierarchy{})
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 100000), testutil.Published)

	history, err := e.donation.History(ctx, donor.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if history.Total != 0 || history.Badge != domain.BadgeBronze || history.NextTarget != 5000 || len(history.Donations) != 0 {
		t.Errorf("empty history = %+v", history)
	}

	steps := []struct {
		amount     float64
		wantBadge  domain.Badge
		wantTarget float64
	}{
		{4999, domain.BadgeBronze, 5000},
		{1, domain.BadgeSilver, 15000},
		{10000, domain.BadgeGold, 15000},
	}

	for _, step := range steps {
		if _, err := e.donation.Donate(ctx, actorFor(donor), cause.ID, &DonateInput{Amount: step.amount, PaymentMethod: "Card"}); err != nil {
			t.Fatalf("Donate(%.0f): %v", step.amount, err)
		}
		history, err := e.donation.History(ctx, donor.ID)
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		if history.Badge != step.wantBadge || history.NextTarget != step.wantTarget {
			t.Errorf("after %.0f: badge=%s next=%.0f, want %s/%.0f", history.Total, history.Badge, history.NextTarget, step.wantBadge, step.wantTarget)
		}
	}

	history, _ = e.donation.History(ctx, donor.ID)
	if len(history.Donations) != 3 || history.Donations[0].CauseTitle != cause.Title {
		t.Errorf("donations = %+v", history.Donations)
	}
}
