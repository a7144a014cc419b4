package models

import "time"

// ============================================================
// Donations
// ============================================================

// Donation is an append-only ledger entry
type Donation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DonorID       uint      `gorm:"not null;index" json:"donor_id"`
	CauseID       uint      `gorm:"not null;index" json:"cause_id"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"`
	TransactionID string    `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	Status        string    `gorm:"size:20;not null;default:'success'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Donor *User  `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Cause *Cause `gorm:"foreignKey:CauseID" json:"cause,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationResponse DTO
type DonationResponse struct {
	ID            uint      `json:"id"`
	CauseID       uint      `json:"cause_id"`
	CauseTitle    string    `json:"cause_title,omitempty"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *Donation) ToResponse() *DonationResponse {
	resp := &DonationResponse{
		ID:            d.ID,
		CauseID:       d.CauseID,
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		TransactionID: d.TransactionID,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
	}
	if d.Cause != nil {
		resp.CauseTitle = d.Cause.Title
	}
	return resp
}
