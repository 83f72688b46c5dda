package customer

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("customer not found")

type Insurance struct {
	Provider     string `json:"provider" validate:"required"`
	PolicyNumber string `json:"policyNumber" validate:"required"`
}

// Customer is a registered patron. TotalPurchases and LastVisit are maintained
// by checkout and are never set through the customer service.
type Customer struct {
	ID               string     `json:"id" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Email            string     `json:"email,omitempty"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address,omitempty"`
	DateOfBirth      string     `json:"dateOfBirth,omitempty"`
	Allergies        []string   `json:"allergies,omitempty"`
	InsuranceInfo    *Insurance `json:"insuranceInfo,omitempty" validate:"omitempty"`
	Notes            string     `json:"notes,omitempty"`
	IsVIP            bool       `json:"isVIP"`
	RegistrationDate time.Time  `json:"registrationDate"`
	LastVisit        *time.Time `json:"lastVisit,omitempty"`
	TotalPurchases   float64    `json:"totalPurchases" validate:"gte=0"`
}
