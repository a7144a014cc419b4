package models

import (
	"time"

	"github.com/nishageedayarathna/DigiBox-sub000/internal/core/domain"
)

// ============================================================
// Causes
// ============================================================

// Cause is a funding request moving through the approval gates
type Cause struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	CreatorID      uint    `gorm:"not null;index" json:"creator_id"`
	Title          string  `gorm:"size:200;not null" json:"title"`
	Description    string  `gorm:"type:text;not null" json:"description"`
	RequiredAmount float64 `gorm:"type:decimal(15,2);not null" json:"required_amount"`

	// Beneficiary
	BeneficiaryName    string `gorm:"size:150;not null" json:"beneficiary_name"`
	BeneficiaryNIC     string `gorm:"size:20;not null" json:"beneficiary_nic"`
	BeneficiaryPhone   string `gorm:"size:20;not null" json:"beneficiary_phone"`
	BeneficiaryEmail   string `gorm:"size:100" json:"beneficiary_email"`
	BeneficiaryAddress string `gorm:"type:text" json:"beneficiary_address"`
	BankName           string `gorm:"size:100;not null" json:"bank_name"`
	BankBranch         string `gorm:"size:100" json:"bank_branch"`
	AccountNumber      string `gorm:"size:50;not null" json:"account_number"`
	AccountHolder      string `gorm:"size:150;not null" json:"account_holder"`

	// Location used to route the cause to its officers
	DistrictCode string `gorm:"size:20;not null;index" json:"district_code"`
	DistrictName string `gorm:"size:100" json:"district_name"`
	DivisionCode string `gorm:"size:20;not null;index" json:"division_code"`
	DivisionName string `gorm:"size:100" json:"division_name"`
	AreaCode     string `gorm:"size:20;not null;index" json:"area_code"`
	AreaName     string `gorm:"size:100" json:"area_name"`

	EvidenceFile     string `gorm:"size:255;not null" json:"evidence_file"`
	EvidenceFileType string `gorm:"size:50" json:"evidence_file_type"`

	// Gates
	AdminStatus     string     `gorm:"size:20;not null;default:'pending';index" json:"admin_status"`
	GSStatus        string     `gorm:"column:gs_status;size:20;not null;default:'pending';index" json:"gs_status"`
	DSStatus        string     `gorm:"column:ds_status;size:20;not null;default:'pending';index" json:"ds_status"`
	FinalStatus     string     `gorm:"size:20;not null;default:'pending';index" json:"final_status"`
	GSOfficerID     *uint      `gorm:"column:gs_officer_id;index" json:"gs_officer_id"`
	DSOfficerID     *uint      `gorm:"column:ds_officer_id;index" json:"ds_officer_id"`
	GSRemarks       string     `gorm:"column:gs_remarks;type:text" json:"gs_remarks"`
	GSVerifiedAt    *time.Time `gorm:"column:gs_verified_at" json:"gs_verified_at"`
	GSDocument      string     `gorm:"column:gs_document;size:255" json:"gs_document"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	RejectedGate    string     `gorm:"size:20" json:"rejected_at_gate"`

	// Fundraising
	FundsRaised float64    `gorm:"type:decimal(15,2);not null;default:0" json:"funds_raised"`
	DonorsCount int64      `gorm:"not null;default:0" json:"donors_count"`
	IsCompleted bool       `gorm:"not null;default:false;index" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	IsPublished bool       `gorm:"not null;default:false;index" json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	PublishedBy *uint      `json:"published_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Creator   *User `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	GSOfficer *User `gorm:"foreignKey:GSOfficerID" json:"gs_officer,omitempty"`
	DSOfficer *User `gorm:"foreignKey:DSOfficerID" json:"ds_officer,omitempty"`
}

func (Cause) TableName() string {
	return "causes"
}

// State extracts the workflow state
func (c *Cause) State() domain.CauseState {
	return domain.CauseState{
		AdminStatus: domain.Status(c.AdminStatus),
		GSStatus:    domain.Status(c.GSStatus),
		DSStatus:    domain.Status(c.DSStatus),
		FinalStatus: domain.Status(c.FinalStatus),
		IsPublished: c.IsPublished,
		IsCompleted: c.IsCompleted,
	}
}

// SetState copies a workflow state onto the record
func (c *Cause) SetState(s domain.CauseState) {
	c.AdminStatus = string(s.AdminStatus)
	c.GSStatus = string(s.GSStatus)
	c.DSStatus = string(s.DSStatus)
	c.FinalStatus = string(s.FinalStatus)
	c.IsPublished = s.IsPublished
	c.IsCompleted = s.IsCompleted
}

// Stage returns the derived workflow position
func (c *Cause) Stage() domain.Stage {
	return c.State().Stage()
}

// CauseResponse DTO
type CauseResponse struct {
	ID                 uint       `json:"id"`
	CreatorID          uint       `json:"creator_id"`
	CreatorName        string     `json:"creator_name,omitempty"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	RequiredAmount     float64    `json:"required_amount"`
	BeneficiaryName    string     `json:"beneficiary_name"`
	BeneficiaryNIC     string     `json:"beneficiary_nic,omitempty"`
	BeneficiaryPhone   string     `json:"beneficiary_phone,omitempty"`
	BeneficiaryEmail   string     `json:"beneficiary_email,omitempty"`
	BeneficiaryAddress string     `json:"beneficiary_address,omitempty"`
	BankName           string     `json:"bank_name,omitempty"`
	BankBranch         string     `json:"bank_branch,omitempty"`
	AccountNumber      string     `json:"account_number,omitempty"`
	AccountHolder      string     `json:"account_holder,omitempty"`
	DistrictCode       string     `json:"district_code"`
	DistrictName       string     `json:"district_name"`
	DivisionCode       string     `json:"division_code"`
	DivisionName       string     `json:"division_name"`
	AreaCode           string     `json:"area_code"`
	AreaName           string     `json:"area_name"`
	EvidenceFile       string     `json:"evidence_file,omitempty"`
	Stage              string     `json:"stage"`
	AdminStatus        string     `json:"admin_status"`
	GSStatus           string     `json:"gs_status"`
	DSStatus           string     `json:"ds_status"`
	FinalStatus        string     `json:"final_status"`
	GSOfficerID        *uint      `json:"gs_officer_id"`
	GSOfficerName      string     `json:"gs_officer_name,omitempty"`
	DSOfficerID        *uint      `json:"ds_officer_id"`
	DSOfficerName      string     `json:"ds_officer_name,omitempty"`
	GSRemarks          string     `json:"gs_remarks,omitempty"`
	GSVerifiedAt       *time.Time `json:"gs_verified_at,omitempty"`
	GSDocument         string     `json:"gs_document,omitempty"`
	RejectionReason    string     `json:"rejection_reason,omitempty"`
	RejectedGate       string     `json:"rejected_at_gate,omitempty"`
	FundsRaised        float64    `json:"funds_raised"`
	DonorsCount        int64      `json:"donors_count"`
	IsCompleted        bool       `json:"is_completed"`
	IsPublished        bool       `json:"is_published"`
	PublishedAt        *time.Time `json:"published_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (c *Cause) ToResponse() *CauseResponse {
	resp := &CauseResponse{
		ID:                 c.ID,
		CreatorID:          c.CreatorID,
		Title:              c.Title,
		Description:        c.Description,
		RequiredAmount:     c.RequiredAmount,
		BeneficiaryName:    c.BeneficiaryName,
		BeneficiaryNIC:     c.BeneficiaryNIC,
		BeneficiaryPhone:   c.BeneficiaryPhone,
		BeneficiaryEmail:   c.BeneficiaryEmail,
		BeneficiaryAddress: c.BeneficiaryAddress,
		BankName:           c.BankName,
		BankBranch:         c.BankBranch,
		AccountNumber:      c.AccountNumber,
		AccountHolder:      c.AccountHolder,
		DistrictCode:       c.DistrictCode,
		DistrictName:       c.DistrictName,
		DivisionCode:       c.DivisionCode,
		DivisionName:       c.DivisionName,
		AreaCode:           c.AreaCode,
		AreaName:           c.AreaName,
		EvidenceFile:       c.EvidenceFile,
		Stage:              string(c.Stage()),
		AdminStatus:        c.AdminStatus,
		GSStatus:           c.GSStatus,
		DSStatus:           c.DSStatus,
		FinalStatus:        c.FinalStatus,
		GSOfficerID:        c.GSOfficerID,
		DSOfficerID:        c.DSOfficerID,
		GSRemarks:          c.GSRemarks,
		GSVerifiedAt:       c.GSVerifiedAt,
		GSDocument:         c.GSDocument,
		RejectionReason:    c.RejectionReason,
		RejectedGate:       c.RejectedGate,
		FundsRaised:        c.FundsRaised,
		DonorsCount:        c.DonorsCount,
		IsCompleted:        c.IsCompleted,
		IsPublished:        c.IsPublished,
		PublishedAt:        c.PublishedAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	if c.Creator != nil {
		resp.CreatorName = c.Creator.Username
	}
	if c.GSOfficer != nil {
		resp.GSOfficerName = c.GSOfficer.Username
	}
	if c.DSOfficer != nil {
		resp.DSOfficerName = c.DSOfficer.Username
	}

	return resp
}

// PublicCauseResponse DTO shown to donors (no banking or identity fields)
type PublicCauseResponse struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	RequiredAmount float64    `json:"required_amount"`
	FundsRaised    float64    `json:"funds_raised"`
	DonorsCount    int64      `json:"donors_count"`
	Progress       float64    `json:"progress"`
	DistrictName   string     `json:"district_name"`
	DivisionName   string     `json:"division_name"`
	AreaName       string     `json:"area_name"`
	GSDocument     string     `json:"gs_document,omitempty"`
	IsCompleted    bool       `json:"is_completed"`
	PublishedAt    *time.Time `json:"published_at"`
}

func (c *Cause) ToPublicResponse() *PublicCauseResponse {
	progress := 0.0
	if c.RequiredAmount > 0 {
		progress = c.FundsRaised / c.RequiredAmount * 100
		if progress > 100 {
			progress = 100
		}
	}

	return &PublicCauseResponse{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		RequiredAmount: c.RequiredAmount,
		FundsRaised:    c.FundsRaised,
		DonorsCount:    c.DonorsCount,
		Progress:       progress,
		DistrictName:   c.DistrictName,
		DivisionName:   c.DivisionName,
		AreaName:       c.AreaName,
		GSDocument:     c.GSDocument,
		IsCompleted:    c.IsCompleted,
		PublishedAt:    c.PublishedAt,
	}
}

// CauseHistory records every gate transition (audit trail)
type CauseHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CauseID     uint      `gorm:"not null;index" json:"cause_id"`
	Gate        string    `gorm:"size:20;not null" json:"gate"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	FromStage   string    `gorm:"size:20" json:"from_stage"`
	ToStage     string    `gorm:"size:20;not null" json:"to_stage"`
	Remark      string    `gorm:"type:text" json:"remark"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	IPAddress   string    `gorm:"size:50" json:"ip_address"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Performer *User `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (CauseHistory) TableName() string {
	return "cause_histories"
}

// History gates that are not approval gates
const (
	HistoryGateCreate   = "create"
	HistoryGateComplete = "complete"
)
