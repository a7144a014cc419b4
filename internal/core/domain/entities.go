package domain

import "strings"

// Role represents user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDonor   Role = "donor"
	RoleCreator Role = "creator"
	RoleGS      Role = "gs"
	RoleDS      Role = "ds"
)

// Roles lists every role, in display order
var Roles = []Role{RoleAdmin, RoleDonor, RoleCreator, RoleGS, RoleDS}

// ParseRole converts a raw string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return known, nil
		}
	}
	return "", ErrInvalidRole
}

// SelfRegistrable reports whether the role may be created through public signup
func (r Role) SelfRegistrable() bool {
	switch r {
	case RoleDonor, RoleCreator:
		return true
	case RoleAdmin, RoleGS, RoleDS:
		return false
	}
	return false
}

// IsOfficer reports whether the role belongs to the administrative hierarchy
func (r Role) IsOfficer() bool {
	switch r {
	case RoleGS, RoleDS:
		return true
	case RoleAdmin, RoleDonor, RoleCreator:
		return false
	}
	return false
}

// Principal is the authenticated caller, resolved once by the auth middleware
type Principal struct {
	UserID       uint
	Username     string
	Role         Role
	DistrictCode string
	DivisionCode string
	AreaCode     string
}

// Hierarchy is an administrative address (district → division → area)
type Hierarchy struct {
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
	DivisionCode string `json:"division_code"`
	DivisionName string `json:"division_name"`
	AreaCode     string `json:"area_code,omitempty"`
	AreaName     string `json:"area_name,omitempty"`
}

// PaymentMethod is how a donor paid
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "Card"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
)

// ParsePaymentMethod validates a payment method string
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.TrimSpace(s)) {
	case PaymentCard:
		return PaymentCard, nil
	case PaymentBankTransfer:
		return PaymentBankTransfer, nil
	}
	return "", ErrInvalidPaymentMethod
}

// Donation status. Payments are not processed, every recorded donation succeeded.
const DonationStatusSuccess = "success"
