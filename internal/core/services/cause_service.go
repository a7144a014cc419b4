package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/models"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/adapters/persistence/repositories"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/letter"
	"github.com/nishageedayarathna/DigiBox-sub000/internal/pkg/storage"

	"gorm.io/gorm"
)

// Cause service errors
var (
	ErrCauseNotFound      = fmt.Errorf("%w: cause not found", domain.ErrNotFound)
	ErrNoGSOfficer        = fmt.Errorf("%w: No GS officer found", domain.ErrNotFound)
	ErrNoDSOfficer        = fmt.Errorf("%w: No DS officer found", domain.ErrNotFound)
	ErrNotAssigned        = fmt.Errorf("%w: cause is not assigned to you", domain.ErrForbidden)
	ErrReasonRequired     = fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	ErrRemarksRequired    = fmt.Errorf("%w: remarks are required", domain.ErrInvalidInput)
	ErrSignatureRequired  = fmt.Errorf("%w: signature is required", domain.ErrInvalidInput)
	ErrSignatureInvalid   = fmt.Errorf("%w: signature must be a base64 PNG or JPEG image", domain.ErrInvalidInput)
	ErrEvidenceRequired   = fmt.Errorf("%w: evidence file is required", domain.ErrInvalidInput)
	ErrEvidenceTooLarge   = fmt.Errorf("%w: evidence file must be 2MB or smaller", domain.ErrInvalidInput)
	ErrEvidenceNotPDF     = fmt.Errorf("%w: evidence file must be a PDF", domain.ErrInvalidInput)
	ErrInvalidAmount      = fmt.Errorf("%w: amount must be a positive value in whole cents", domain.ErrInvalidInput)
	ErrInvalidStageFilter = fmt.Errorf("%w: unknown status filter", domain.ErrInvalidInput)
)

// Actor is the authenticated caller of a workflow operation
type Actor struct {
	domain.Principal
	IP string
}

// CauseService runs the approval workflow: Admin → GS → DS → publish
type CauseService struct {
	causeRepo   repositories.CauseRepository
	userRepo    repositories.UserRepository
	historyRepo repositories.HistoryRepository
	hierarchy   *HierarchyService
	store       *storage.Store
	notifier    *NotificationService
}

// NewCauseService creates a new cause service
func NewCauseService(
	causeRepo repositories.CauseRepository,
	userRepo repositories.UserRepository,
	historyRepo repositories.HistoryRepository,
	hierarchy *HierarchyService,
	store *storage.Store,
	notifier *NotificationService,
) *CauseService {
	return &CauseService{
		causeRepo:   causeRepo,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		hierarchy:   hierarchy,
		store:       store,
		notifier:    notifier,
	}
}

// CreateCauseInput represents a new cause submitted by a creator
type CreateCauseInput struct {
	Title              string  `json:"title" form:"title"`
	Description        string  `json:"description" form:"description"`
	RequiredAmount     float64 `json:"required_amount" form:"required_amount"`
	BeneficiaryName    string  `json:"beneficiary_name" form:"beneficiary_name"`
	BeneficiaryNIC     string  `json:"beneficiary_nic" form:"beneficiary_nic"`
	BeneficiaryPhone   string  `json:"beneficiary_phone" form:"beneficiary_phone"`
	BeneficiaryEmail   string  `json:"beneficiary_email" form:"beneficiary_email"`
	BeneficiaryAddress string  `json:"beneficiary_address" form:"beneficiary_address"`
	BankName           string  `json:"bank_name" form:"bank_name"`
	BankBranch         string  `json:"bank_branch" form:"bank_branch"`
	AccountNumber      string  `json:"account_number" form:"account_number"`
	AccountHolder      string  `json:"account_holder" form:"account_holder"`
	DistrictCode       string  `json:"district_code" form:"district_code"`
	DistrictName       string  `json:"district_name" form:"district_name"`
	DivisionCode       string  `json:"division_code" form:"division_code"`
	DivisionName       string  `json:"division_name" form:"division_name"`
	AreaCode           string  `json:"area_code" form:"area_code"`
	AreaName           string  `json:"area_name" form:"area_name"`
}

// AdminActionInput represents the admin gate decision
type AdminActionInput struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

// GSApproveInput represents the GS gate approval
type GSApproveInput struct {
	Remarks   string `json:"remarks"`
	Signature string `json:"signature"`
}

// RejectInput represents an officer rejection
type RejectInput struct {
	Reason string `json:"reason"`
}

// ListCausesInput represents paging plus an optional status or stage filter
type ListCausesInput struct {
	Status string
	Stage  string
	Offset int
	Limit  int
}

func (in *CreateCauseInput) normalize() error {
	fields := []*string{
		&in.Title, &in.Description, &in.BeneficiaryName, &in.BeneficiaryNIC,
		&in.BeneficiaryPhone, &in.BeneficiaryEmail, &in.BeneficiaryAddress,
		&in.BankName, &in.BankBranch, &in.AccountNumber, &in.AccountHolder,
		&in.DistrictCode, &in.DistrictName, &in.DivisionCode, &in.DivisionName,
		&in.AreaCode, &in.AreaName,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}

	required := []struct {
		name  string
		value string
	}{
		{"title", in.Title},
		{"description", in.Description},
		{"beneficiary_name", in.BeneficiaryName},
		{"beneficiary_nic", in.BeneficiaryNIC},
		{"beneficiary_phone", in.BeneficiaryPhone},
		{"bank_name", in.BankName},
		{"account_number", in.AccountNumber},
		{"account_holder", in.AccountHolder},
		{"district_code", in.DistrictCode},
		{"division_code", in.DivisionCode},
		{"area_code", in.AreaCode},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, r.name)
		}
	}

	if !domain.ValidAmount(in.RequiredAmount) {
		return ErrInvalidAmount
	}
	return nil
}

// Create submits a new cause with its evidence PDF. The cause starts at the
// admin gate and every admin is notified.
func (s *CauseService) Create(ctx context.Context, actor Actor, input *CreateCauseInput, evidence *multipart.FileHeader) (*models.CauseResponse, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	h := domain.Hierarchy{
		DistrictCode: input.DistrictCode,
		DistrictName: input.DistrictName,
		DivisionCode: input.DivisionCode,
		DivisionName: input.DivisionName,
		AreaCode:     input.AreaCode,
		AreaName:     input.AreaName,
	}
	if h.DistrictName == "" || h.DivisionName == "" || h.AreaName == "" {
		// Names come from the GS officer holding the area when the form omits them
		if known, err := s.hierarchy.ResolveArea(ctx, h.AreaCode, h.DivisionCode); err == nil {
			h = fillNames(h, known)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	evidencePath, evidenceType, err := s.store.SaveEvidencePDF(evidence)
	if err != nil {
		return nil, evidenceError(err)
	}

	state := domain.NewCauseState()
	cause := &models.Cause{
		CreatorID:          actor.UserID,
		Title:              input.Title,
		Description:        input.Description,
		RequiredAmount:     input.RequiredAmount,
		BeneficiaryName:    input.BeneficiaryName,
		BeneficiaryNIC:     input.BeneficiaryNIC,
		BeneficiaryPhone:   input.BeneficiaryPhone,
		BeneficiaryEmail:   input.BeneficiaryEmail,
		BeneficiaryAddress: input.BeneficiaryAddress,
		BankName:           input.BankName,
		BankBranch:         input.BankBranch,
		AccountNumber:      input.AccountNumber,
		AccountHolder:      input.AccountHolder,
		DistrictCode:       h.DistrictCode,
		DistrictName:       h.DistrictName,
		DivisionCode:       h.DivisionCode,
		DivisionName:       h.DivisionName,
		AreaCode:           h.AreaCode,
		AreaName:           h.AreaName,
		EvidenceFile:       evidencePath,
		EvidenceFileType:   evidenceType,
	}
	cause.SetState(state)

	if err := s.causeRepo.Create(ctx, cause); err != nil {
		if rmErr := s.store.Remove(evidencePath); rmErr != nil {
			log.Printf("⚠️ Failed to remove evidence %s: %v", evidencePath, rmErr)
		}
		return nil, err
	}

	if err := s.historyRepo.Create(ctx, &models.CauseHistory{
		CauseID:     cause.ID,
		Gate:        models.HistoryGateCreate,
		Action:      "submit",
		ToStage:     string(state.Stage()),
		PerformedBy: actor.UserID,
		IPAddress:   actor.IP,
	}); err != nil {
		log.Printf("⚠️ Failed to record history for cause %d: %v", cause.ID, err)
	}

	s.notifier.NotifyCauseSubmitted(ctx, cause, s.admins(ctx))

	log.Printf("✅ Cause #%d submitted by %s", cause.ID, actor.Username)
	return cause.ToResponse(), nil
}

// AdminAction applies the admin gate. Approval needs a GS officer for the
// cause's area; when none exists the cause is left untouched.
func (s *CauseService) AdminAction(ctx context.Context, actor Actor, id uint, input *AdminActionInput) (*models.CauseResponse, error) {
	action, err := domain.ParseAction(input.Action)
	if err != nil {
		return nil, err
	}

	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(cause.State(), domain.GateAdmin, action)
	if err != nil {
		return nil, err
	}

	if action == domain.ActionReject {
		reason := strings.TrimSpace(input.Reason)
		if reason == "" {
			reason = "Rejected by admin"
		}
		return s.reject(ctx, actor, cause, next, domain.GateAdmin, reason)
	}

	officer, err := s.userRepo.FindGSOfficer(ctx, cause.AreaCode, cause.DivisionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoGSOfficer
		}
		return nil, err
	}

	updated, err := s.apply(ctx, actor, cause, next, domain.GateAdmin, action, "", map[string]interface{}{
		"gs_officer_id": officer.ID,
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyOfficerAssigned(ctx, updated, officer, "GS")
	log.Printf("✅ Cause #%d approved by admin %s, assigned to GS %s", id, actor.Username, officer.Username)
	return updated.ToResponse(), nil
}

// GSApprove applies the GS gate. It renders the signed verification letter
// and forwards the cause to the division's DS officer.
func (s *CauseService) GSApprove(ctx context.Context, actor Actor, id uint, input *GSApproveInput) (*models.CauseResponse, error) {
	remarks := strings.TrimSpace(input.Remarks)
	if remarks == "" {
		return nil, ErrRemarksRequired
	}
	signature, err := letter.ParseSignature(input.Signature)
	if err != nil {
		if errors.Is(err, letter.ErrSignatureMissing) {
			return nil, ErrSignatureRequired
		}
		return nil, ErrSignatureInvalid
	}

	cause, err := s.assignedCause(ctx, actor, id, domain.GateGS)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(cause.State(), domain.GateGS, domain.ActionApprove)
	if err != nil {
		return nil, err
	}

	officer, err := s.userRepo.FindDSOfficer(ctx, cause.DivisionCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDSOfficer
		}
		return nil, err
	}

	verifiedAt := time.Now()
	doc, err := s.store.SaveLetter(func(w io.Writer) error {
		return letter.Render(w, letter.Data{
			CauseID:          cause.ID,
			CauseTitle:       cause.Title,
			Description:      cause.Description,
			RequiredAmount:   cause.RequiredAmount,
			BeneficiaryName:  cause.BeneficiaryName,
			BeneficiaryNIC:   cause.BeneficiaryNIC,
			BeneficiaryPhone: cause.BeneficiaryPhone,
			Address:          cause.BeneficiaryAddress,
			AreaName:         cause.AreaName,
			DivisionName:     cause.DivisionName,
			DistrictName:     cause.DistrictName,
			OfficerName:      actor.Username,
			Remarks:          remarks,
			VerifiedAt:       verifiedAt,
			Signature:        signature,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("render verification letter: %w", err)
	}

	updated, err := s.apply(ctx, actor, cause, next, domain.GateGS, domain.ActionApprove, remarks, map[string]interface{}{
		"gs_remarks":     remarks,
		"gs_verified_at": verifiedAt,
		"gs_document":    doc,
		"ds_officer_id":  officer.ID,
	})
	if err != nil {
		if rmErr := s.store.Remove(doc); rmErr != nil {
			log.Printf("⚠️ Failed to remove letter %s: %v", doc, rmErr)
		}
		return nil, err
	}

	s.notifier.NotifyOfficerAssigned(ctx, updated, officer, "DS")
	log.Printf("✅ Cause #%d verified by GS %s, forwarded to DS %s", id, actor.Username, officer.Username)
	return updated.ToResponse(), nil
}

// GSReject rejects a cause at the GS gate
func (s *CauseService) GSReject(ctx context.Context, actor Actor, id uint, input *RejectInput) (*models.CauseResponse, error) {
	return s.officerReject(ctx, actor, id, domain.GateGS, input)
}

// DSApprove gives final approval. The cause then waits for publication.
func (s *CauseService) DSApprove(ctx context.Context, actor Actor, id uint) (*models.CauseResponse, error) {
	cause, err := s.assignedCause(ctx, actor, id, domain.GateDS)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(cause.State(), domain.GateDS, domain.ActionApprove)
	if err != nil {
		return nil, err
	}

	updated, err := s.apply(ctx, actor, cause, next, domain.GateDS, domain.ActionApprove, "", nil)
	if err != nil {
		return nil, err
	}

	if updated.Creator != nil {
		s.notifier.NotifyCauseApproved(ctx, updated, updated.Creator)
	}
	log.Printf("✅ Cause #%d approved by DS %s", id, actor.Username)
	return updated.ToResponse(), nil
}

// DSReject rejects a cause at the DS gate
func (s *CauseService) DSReject(ctx context.Context, actor Actor, id uint, input *RejectInput) (*models.CauseResponse, error) {
	return s.officerReject(ctx, actor, id, domain.GateDS, input)
}

// Publish makes a fully approved cause visible to donors
func (s *CauseService) Publish(ctx context.Context, actor Actor, id uint) (*models.CauseResponse, error) {
	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(cause.State(), domain.GatePublish, domain.ActionApprove)
	if err != nil {
		return nil, err
	}

	updated, err := s.apply(ctx, actor, cause, next, domain.GatePublish, domain.ActionApprove, "", map[string]interface{}{
		"published_at": time.Now(),
		"published_by": actor.UserID,
	})
	if err != nil {
		return nil, err
	}

	if updated.Creator != nil {
		s.notifier.NotifyCausePublished(ctx, updated, updated.Creator)
	}
	log.Printf("✅ Cause #%d published by %s", id, actor.Username)
	return updated.ToResponse(), nil
}

func (s *CauseService) officerReject(ctx context.Context, actor Actor, id uint, gate domain.Gate, input *RejectInput) (*models.CauseResponse, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, ErrReasonRequired
	}

	cause, err := s.assignedCause(ctx, actor, id, gate)
	if err != nil {
		return nil, err
	}
	next, err := domain.Transition(cause.State(), gate, domain.ActionReject)
	if err != nil {
		return nil, err
	}
	return s.reject(ctx, actor, cause, next, gate, reason)
}

func (s *CauseService) reject(ctx context.Context, actor Actor, cause *models.Cause, next domain.CauseState, gate domain.Gate, reason string) (*models.CauseResponse, error) {
	updated, err := s.apply(ctx, actor, cause, next, gate, domain.ActionReject, reason, map[string]interface{}{
		"rejection_reason": reason,
		"rejected_gate":    string(gate),
	})
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyCauseRejected(ctx, updated, updated.Creator, s.admins(ctx), strings.ToUpper(string(gate)), reason)
	log.Printf("❌ Cause #%d rejected at %s gate by %s", cause.ID, gate, actor.Username)
	return updated.ToResponse(), nil
}

// apply writes the next state plus extra columns guarded by the snapshot the
// transition was computed from, records history, and reloads the cause.
func (s *CauseService) apply(
	ctx context.Context,
	actor Actor,
	cause *models.Cause,
	next domain.CauseState,
	gate domain.Gate,
	action domain.Action,
	remark string,
	extra map[string]interface{},
) (*models.Cause, error) {
	updates := map[string]interface{}{
		"admin_status": string(next.AdminStatus),
		"gs_status":    string(next.GSStatus),
		"ds_status":    string(next.DSStatus),
		"final_status": string(next.FinalStatus),
		"is_published": next.IsPublished,
	}
	for k, v := range extra {
		updates[k] = v
	}

	entry := &models.CauseHistory{
		Gate:        string(gate),
		Action:      string(action),
		FromStage:   string(cause.Stage()),
		ToStage:     string(next.Stage()),
		Remark:      remark,
		PerformedBy: actor.UserID,
		IPAddress:   actor.IP,
	}

	if err := s.causeRepo.ApplyTransition(ctx, cause, updates, entry); err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return nil, domain.ErrStaleCause
		}
		return nil, err
	}

	return s.getCause(ctx, cause.ID)
}

// assignedCause loads a cause and checks the caller is the officer assigned to gate
func (s *CauseService) assignedCause(ctx context.Context, actor Actor, id uint, gate domain.Gate) (*models.Cause, error) {
	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}

	var assigned *uint
	switch gate {
	case domain.GateGS:
		assigned = cause.GSOfficerID
	case domain.GateDS:
		assigned = cause.DSOfficerID
	}
	if assigned == nil || *assigned != actor.UserID {
		return nil, ErrNotAssigned
	}
	return cause, nil
}

func (s *CauseService) getCause(ctx context.Context, id uint) (*models.Cause, error) {
	cause, err := s.causeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCauseNotFound
		}
		return nil, err
	}
	return cause, nil
}

// admins returns every admin for broadcast mail. Lookup failures only cost
// the broadcast.
func (s *CauseService) admins(ctx context.Context) []*models.User {
	admins, err := s.userRepo.ListByRoles(ctx, string(domain.RoleAdmin))
	if err != nil {
		log.Printf("⚠️ Failed to load admins for notification: %v", err)
		return nil
	}
	return admins
}

// ============================================================
// Queries
// ============================================================

// ListForAdmin lists every cause, filtered by admin status or stage
func (s *CauseService) ListForAdmin(ctx context.Context, input *ListCausesInput) ([]*models.CauseResponse, int64, error) {
	filter := repositories.CauseFilter{}
	if input.Status != "" {
		status, ok := domain.ParseStatus(input.Status)
		if !ok {
			return nil, 0, ErrInvalidStageFilter
		}
		filter.AdminStatus = string(status)
	}
	if input.Stage != "" {
		stage, ok := parseStage(input.Stage)
		if !ok {
			return nil, 0, ErrInvalidStageFilter
		}
		filter.Stage = string(stage)
	}
	return s.list(ctx, filter, input.Offset, input.Limit)
}

// GetForAdmin returns any cause with every field
func (s *CauseService) GetForAdmin(ctx context.Context, id uint) (*models.CauseResponse, error) {
	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}
	return cause.ToResponse(), nil
}

// History returns the audit trail of a cause, oldest first
func (s *CauseService) History(ctx context.Context, id uint) ([]*models.CauseHistory, error) {
	if _, err := s.getCause(ctx, id); err != nil {
		return nil, err
	}
	return s.historyRepo.GetByCauseID(ctx, id)
}

// ListForOfficer lists causes assigned to a GS or DS officer. With pending
// set only causes waiting on that officer's gate are returned.
func (s *CauseService) ListForOfficer(ctx context.Context, actor Actor, pending bool, offset, limit int) ([]*models.CauseResponse, int64, error) {
	filter := repositories.CauseFilter{}
	switch actor.Role {
	case domain.RoleGS:
		filter.GSOfficerID = &actor.UserID
		if pending {
			filter.Stage = string(domain.StagePendingGS)
		}
	case domain.RoleDS:
		filter.DSOfficerID = &actor.UserID
		if pending {
			filter.Stage = string(domain.StagePendingDS)
		}
	default:
		return nil, 0, ErrNotAnOfficerRole
	}
	return s.list(ctx, filter, offset, limit)
}

// ListMine lists the creator's own causes
func (s *CauseService) ListMine(ctx context.Context, actor Actor, offset, limit int) ([]*models.CauseResponse, int64, error) {
	return s.list(ctx, repositories.CauseFilter{CreatorID: &actor.UserID}, offset, limit)
}

// GetMine returns one of the creator's own causes. Other creators' causes are reported as missing.
func (s *CauseService) GetMine(ctx context.Context, actor Actor, id uint) (*models.CauseResponse, error) {
	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}
	if cause.CreatorID != actor.UserID {
		return nil, ErrCauseNotFound
	}
	return cause.ToResponse(), nil
}

// ListPublished lists causes open for donation
func (s *CauseService) ListPublished(ctx context.Context, offset, limit int) ([]*models.PublicCauseResponse, int64, error) {
	causes, total, err := s.causeRepo.List(ctx, repositories.CauseFilter{Stage: string(domain.StagePublished)}, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.PublicCauseResponse, len(causes))
	for i, c := range causes {
		out[i] = c.ToPublicResponse()
	}
	return out, total, nil
}

// GetPublished returns one published cause. Unpublished causes are reported as missing.
func (s *CauseService) GetPublished(ctx context.Context, id uint) (*models.PublicCauseResponse, error) {
	cause, err := s.getCause(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cause.IsPublished {
		return nil, ErrCauseNotFound
	}
	return cause.ToPublicResponse(), nil
}

func (s *CauseService) list(ctx context.Context, filter repositories.CauseFilter, offset, limit int) ([]*models.CauseResponse, int64, error) {
	causes, total, err := s.causeRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]*models.CauseResponse, len(causes))
	for i, c := range causes {
		out[i] = c.ToResponse()
	}
	return out, total, nil
}

func parseStage(s string) (domain.Stage, bool) {
	switch st := domain.Stage(strings.ToLower(strings.TrimSpace(s))); st {
	case domain.StagePendingAdmin, domain.StagePendingGS, domain.StagePendingDS,
		domain.StageApproved, domain.StagePublished, domain.StageCompleted, domain.StageRejected:
		return st, true
	}
	return "", false
}

func fillNames(h, known domain.Hierarchy) domain.Hierarchy {
	if h.DistrictName == "" {
		h.DistrictName = known.DistrictName
	}
	if h.DivisionName == "" {
		h.DivisionName = known.DivisionName
	}
	if h.AreaName == "" {
		h.AreaName = known.AreaName
	}
	return h
}

func evidenceError(err error) error {
	switch {
	case errors.Is(err, storage.ErrFileMissing):
		return ErrEvidenceRequired
	case errors.Is(err, storage.ErrFileTooLarge):
		return ErrEvidenceTooLarge
	case errors.Is(err, storage.ErrNotPDF):
		return ErrEvidenceNotPDF
	}
	return err
}
