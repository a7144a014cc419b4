package services

import (
	"context"
	"testing"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/testutil"
)

func TestSendPendingReminders(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	ds := testutil.CreateUser(t, e.db, "ds_dv01", domain.RoleDS, dsOf(testutil.Colombo))

	atGS := func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	}
	old := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), atGS)
	testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), atGS)
	atDS := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		atGS(c)
		c.GSStatus = string(domain.StatusApproved)
		c.DSOfficerID = &ds.ID
	})

	// UpdateColumn skips the updated_at hook
	stale := time.Now().AddDate(0, 0, -5)
	for _, id := range []uint{old.ID, atDS.ID} {
		if err := e.db.Model(&models.Cause{}).Where("id = ?", id).UpdateColumn("updated_at", stale).Error; err != nil {
			t.Fatalf("age cause: %v", err)
		}
	}

	cronSvc := NewCronService(e.causes, e.users, NewNotificationService(e.queue), e.cfg.Cron)
	sent, err := cronSvc.SendPendingReminders(ctx)
	if err != nil {
		t.Fatalf("SendPendingReminders: %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}

	gsMail := e.queue.sentTo(gs.Email)
	if len(gsMail) != 1 || gsMail[0] != "1 causes are waiting for your verification" {
		t.Errorf("GS reminders = %v", gsMail)
	}
	if !hasSubject(e.queue.sentTo(ds.Email), "waiting for your verification") {
		t.Errorf("DS not reminded")
	}
}

func TestCronService_StartRejectsBadSpec(t *testing.T) {
	e := newTestEnv(t)
	cfg := e.cfg.Cron
	cfg.ReminderSpec = "every morning"

	cronSvc := NewCronService(e.causes, e.users, nil, cfg)
	if err := cronSvc.Start(); err == nil {
		cronSvc.Stop()
		t.Fatal("Start accepted an invalid spec")
	}
}
