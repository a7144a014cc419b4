package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/testutil"
)

// TestCauseLifecycle walks one cause from submission to completion
func TestCauseLifecycle(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, e.db, "admin", domain.RoleAdmin, domain.Hierarchy{})
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	ds := testutil.CreateUser(t, e.db, "ds_dv01", domain.RoleDS, dsOf(testutil.Colombo))
	donor := testutil.CreateUser(t, e.db, "donor", domain.RoleDonor, domain.Hierarchy{})

	created, err := e.cause.Create(ctx, actorFor(creator), causeInput(testutil.Colombo, 10000), evidencePDF(t))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Stage != string(domain.StagePendingAdmin) {
		t.Fatalf("stage after create = %s", created.Stage)
	}
	if created.AreaName != testutil.Colombo.AreaName {
		t.Errorf("area name = %q, want it resolved from the GS officer", created.AreaName)
	}
	if !hasSubject(e.queue.sentTo(admin.Email), "awaiting review") {
		t.Errorf("admin not told about new cause")
	}

	// Admin gate
	resp, err := e.cause.AdminAction(ctx, actorFor(admin), created.ID, &AdminActionInput{Action: "approve"})
	if err != nil {
		t.Fatalf("AdminAction: %v", err)
	}
	if resp.Stage != string(domain.StagePendingGS) || resp.GSOfficerID == nil || *resp.GSOfficerID != gs.ID {
		t.Fatalf("after admin approve: stage=%s gs_officer=%v", resp.Stage, resp.GSOfficerID)
	}
	if !hasSubject(e.queue.sentTo(gs.Email), "GS verification") {
		t.Errorf("GS officer not notified")
	}

	// GS gate
	resp, err = e.cause.GSApprove(ctx, actorFor(gs), created.ID, &GSApproveInput{
		Remarks:   "Visited the house, details are correct",
		Signature: signatureDataURL(t),
	})
	if err != nil {
		t.Fatalf("GSApprove: %v", err)
	}
	if resp.Stage != string(domain.StagePendingDS) || resp.DSOfficerID == nil || *resp.DSOfficerID != ds.ID {
		t.Fatalf("after GS approve: stage=%s ds_officer=%v", resp.Stage, resp.DSOfficerID)
	}
	if resp.GSDocument == "" || resp.GSVerifiedAt == nil {
		t.Fatalf("GS letter not recorded: %+v", resp)
	}
	letterPath := filepath.Join(e.store.Root, strings.TrimPrefix(resp.GSDocument, "/uploads/"))
	data, err := os.ReadFile(letterPath)
	if err != nil {
		t.Fatalf("letter not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Errorf("letter is not a PDF")
	}

	// DS gate
	resp, err = e.cause.DSApprove(ctx, actorFor(ds), created.ID)
	if err != nil {
		t.Fatalf("DSApprove: %v", err)
	}
	if resp.Stage != string(domain.StageApproved) || resp.FinalStatus != string(domain.StatusApproved) {
		t.Fatalf("after DS approve: stage=%s final=%s", resp.Stage, resp.FinalStatus)
	}

	// Publish
	resp, err = e.cause.Publish(ctx, actorFor(admin), created.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !resp.IsPublished || resp.PublishedAt == nil {
		t.Fatalf("cause not published: %+v", resp)
	}

	// Donate the full amount
	receipt, err := e.donation.Donate(ctx, actorFor(donor), created.ID, &DonateInput{Amount: 10000, PaymentMethod: "Card"})
	if err != nil {
		t.Fatalf("Donate: %v", err)
	}
	if !receipt.CauseComplete {
		t.Errorf("receipt does not report completion")
	}

	final, err := e.cause.GetForAdmin(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetForAdmin: %v", err)
	}
	if !final.IsCompleted || final.DonorsCount != 1 || final.FundsRaised != 10000 {
		t.Errorf("final cause = completed:%v donors:%d raised:%.2f", final.IsCompleted, final.DonorsCount, final.FundsRaised)
	}
	if final.Stage != string(domain.StageCompleted) {
		t.Errorf("final stage = %s", final.Stage)
	}

	history, err := e.cause.History(ctx, created.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	var gates []string
	for _, h := range history {
		gates = append(gates, h.Gate)
	}
	want := []string{"create", "admin", "gs", "ds", "publish", "complete"}
	if strings.Join(gates, ",") != strings.Join(want, ",") {
		t.Errorf("history gates = %v, want %v", gates, want)
	}

	subjects := e.queue.sentTo(creator.Email)
	for _, s := range []string{"approved", "is live", "reached its goal"} {
		if !hasSubject(subjects, s) {
			t.Errorf("creator missing %q notification, got %v", s, subjects)
		}
	}
}

func TestAdminApprove_NoGSOfficerLeavesCauseUnchanged(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, e.db, "admin", domain.RoleAdmin, domain.Hierarchy{})
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000))

	_, err := e.cause.AdminAction(ctx, actorFor(admin), cause.ID, &AdminActionInput{Action: "approve"})
	if !errors.Is(err, ErrNoGSOfficer) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNoGSOfficer", err)
	}

	got, err := e.causes.GetByID(ctx, cause.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.AdminStatus != string(domain.StatusPending) || got.GSOfficerID != nil {
		t.Errorf("cause changed: admin_status=%s gs_officer=%v", got.AdminStatus, got.GSOfficerID)
	}
}

func TestGSApprove_NoDSOfficerLeavesCauseUnchanged(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	})

	_, err := e.cause.GSApprove(ctx, actorFor(gs), cause.ID, &GSApproveInput{Remarks: "ok", Signature: signatureDataURL(t)})
	if !errors.Is(err, ErrNoDSOfficer) {
		t.Fatalf("error = %v, want ErrNoDSOfficer", err)
	}

	got, _ := e.causes.GetByID(ctx, cause.ID)
	if got.GSStatus != string(domain.StatusPending) || got.GSDocument != "" {
		t.Errorf("cause changed: gs_status=%s gs_document=%q", got.GSStatus, got.GSDocument)
	}

	entries, _ := os.ReadDir(filepath.Join(e.store.Root, "letters"))
	if len(entries) != 0 {
		t.Errorf("letters written for a failed approval: %d", len(entries))
	}
}

func TestGSApprove_Validation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	other := testutil.CreateUser(t, e.db, "gs_a02", domain.RoleGS, domain.Hierarchy{
		DistrictCode: "D01", DivisionCode: "DV01", AreaCode: "A02",
	})
	testutil.CreateUser(t, e.db, "ds_dv01", domain.RoleDS, dsOf(testutil.Colombo))
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	})
	sig := signatureDataURL(t)

	tests := []struct {
		name    string
		actor   *models.User
		input   GSApproveInput
		wantErr error
	}{
		{"missing remarks", gs, GSApproveInput{Signature: sig}, ErrRemarksRequired},
		{"missing signature", gs, GSApproveInput{Remarks: "ok"}, ErrSignatureRequired},
		{"bad signature", gs, GSApproveInput{Remarks: "ok", Signature: "data:image/png;base64,aGVsbG8="}, ErrSignatureInvalid},
		{"not assigned", other, GSApproveInput{Remarks: "ok", Signature: sig}, ErrNotAssigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.cause.GSApprove(ctx, actorFor(tt.actor), cause.ID, &tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGSReject_NotifiesCreatorAndAdmins(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, e.db, "admin", domain.RoleAdmin, domain.Hierarchy{})
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	})

	if _, err := e.cause.GSReject(ctx, actorFor(gs), cause.ID, &RejectInput{Reason: "  "}); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("blank reason error = %v, want ErrReasonRequired", err)
	}

	resp, err := e.cause.GSReject(ctx, actorFor(gs), cause.ID, &RejectInput{Reason: "Beneficiary does not live here"})
	if err != nil {
		t.Fatalf("GSReject: %v", err)
	}
	if resp.Stage != string(domain.StageRejected) || resp.RejectedGate != "gs" || resp.RejectionReason == "" {
		t.Errorf("after reject: %+v", resp)
	}
	if !hasSubject(e.queue.sentTo(creator.Email), "rejected") {
		t.Errorf("creator not told about rejection")
	}
	if !hasSubject(e.queue.sentTo(admin.Email), "rejected at GS stage") {
		t.Errorf("admins not told about rejection")
	}

	// Rejection is terminal
	_, err = e.cause.GSApprove(ctx, actorFor(gs), cause.ID, &GSApproveInput{Remarks: "ok", Signature: signatureDataURL(t)})
	if !errors.Is(err, domain.ErrCauseRejected) {
		t.Errorf("approve after reject error = %v, want ErrCauseRejected", err)
	}
}

func TestAdminReject_DefaultsReason(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, e.db, "admin", domain.RoleAdmin, domain.Hierarchy{})
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	cause := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000))

	resp, err := e.cause.AdminAction(ctx, actorFor(admin), cause.ID, &AdminActionInput{Action: "reject"})
	if err != nil {
		t.Fatalf("AdminAction: %v", err)
	}
	if resp.AdminStatus != "rejected" || resp.GSStatus != "rejected" || resp.FinalStatus != "rejected" {
		t.Errorf("statuses = %s/%s/%s", resp.AdminStatus, resp.GSStatus, resp.FinalStatus)
	}
	if resp.RejectionReason != "Rejected by admin" {
		t.Errorf("reason = %q", resp.RejectionReason)
	}

	if _, err := e.cause.AdminAction(ctx, actorFor(admin), cause.ID, &AdminActionInput{Action: "maybe"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown action error = %v, want ErrInvalidInput", err)
	}
}

func TestPublish_Preconditions(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	admin := testutil.CreateUser(t, e.db, "admin", domain.RoleAdmin, domain.Hierarchy{})
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})

	pending := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000))
	_, err := e.cause.Publish(ctx, actorFor(admin), pending.ID)
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Errorf("publish pending error = %v, want ErrPreconditionFailed", err)
	}

	published := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), testutil.Published)
	_, err = e.cause.Publish(ctx, actorFor(admin), published.ID)
	if !errors.Is(err, domain.ErrAlreadyPublished) {
		t.Errorf("publish twice error = %v, want ErrAlreadyPublished", err)
	}

	if _, err := e.cause.Publish(ctx, actorFor(admin), 9999); !errors.Is(err, ErrCauseNotFound) {
		t.Errorf("publish missing error = %v, want ErrCauseNotFound", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})

	noTitle := causeInput(testutil.Colombo, 1000)
	noTitle.Title = " "
	if _, err := e.cause.Create(ctx, actorFor(creator), noTitle, evidencePDF(t)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing title error = %v", err)
	}

	if _, err := e.cause.Create(ctx, actorFor(creator), causeInput(testutil.Colombo, 0), evidencePDF(t)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount error = %v", err)
	}

	for _, amount := range []float64{1000.001, domain.MaxAmount * 10} {
		if _, err := e.cause.Create(ctx, actorFor(creator), causeInput(testutil.Colombo, amount), evidencePDF(t)); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %v error = %v, want ErrInvalidAmount", amount, err)
		}
	}

	if _, err := e.cause.Create(ctx, actorFor(creator), causeInput(testutil.Colombo, 1000), nil); !errors.Is(err, ErrEvidenceRequired) {
		t.Errorf("missing evidence error = %v", err)
	}
}

func TestCreatorAndDonorVisibility(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	stranger := testutil.CreateUser(t, e.db, "stranger", domain.RoleCreator, domain.Hierarchy{})
	pending := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000))
	live := testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), testutil.Published)

	if _, err := e.cause.GetMine(ctx, actorFor(stranger), pending.ID); !errors.Is(err, ErrCauseNotFound) {
		t.Errorf("stranger GetMine error = %v, want ErrCauseNotFound", err)
	}
	mine, total, err := e.cause.ListMine(ctx, actorFor(creator), 0, 10)
	if err != nil || total != 2 || len(mine) != 2 {
		t.Errorf("ListMine = %d/%d, %v", len(mine), total, err)
	}

	if _, err := e.cause.GetPublished(ctx, pending.ID); !errors.Is(err, ErrCauseNotFound) {
		t.Errorf("GetPublished on pending error = %v", err)
	}
	open, total, err := e.cause.ListPublished(ctx, 0, 10)
	if err != nil || total != 1 || open[0].ID != live.ID {
		t.Errorf("ListPublished = %+v (%d), %v", open, total, err)
	}
}

func TestListForOfficer(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	creator := testutil.CreateUser(t, e.db, "creator", domain.RoleCreator, domain.Hierarchy{})
	gs := testutil.CreateUser(t, e.db, "gs_a01", domain.RoleGS, testutil.Colombo)
	testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	})
	testutil.CreateCause(t, e.db, testutil.NewCause(creator.ID, testutil.Colombo, 1000), func(c *models.Cause) {
		c.AdminStatus = string(domain.StatusApproved)
		c.GSStatus = string(domain.StatusApproved)
		c.GSOfficerID = &gs.ID
	})

	_, pending, err := e.cause.ListForOfficer(ctx, actorFor(gs), true, 0, 10)
	if err != nil || pending != 1 {
		t.Errorf("pending = %d, %v; want 1", pending, err)
	}
	_, all, err := e.cause.ListForOfficer(ctx, actorFor(gs), false, 0, 10)
	if err != nil || all != 2 {
		t.Errorf("all = %d, %v; want 2", all, err)
	}

	if _, _, err := e.cause.ListForOfficer(ctx, actorFor(creator), true, 0, 10); !errors.Is(err, ErrNotAnOfficerRole) {
		t.Errorf("creator error = %v", err)
	}
}
