package prescription

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("prescription not found")
	ErrDuplicateNumber = errors.New("prescription number already in use")
)

const NumberPrefix = "RX"

// NextNumber returns the RX number after the highest one in existing.
// Numbers in any other format are ignored.
func NextNumber(existing []*Prescription) string {
	highest := 0

	for _, p := range existing {
		digits, ok := strings.CutPrefix(p.PrescriptionNumber, NumberPrefix)
		if !ok {
			continue
		}

		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}

		highest = max(highest, n)
	}

	return fmt.Sprintf("%s%06d", NumberPrefix, highest+1)
}

// Status is where a prescription sits in the dispensing workflow. Any status
// may be set from any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}

	return false
}

type Prescription struct {
	ID                 string     `json:"id" validate:"required"`
	PrescriptionNumber string     `json:"prescriptionNumber" validate:"required"`
	CustomerID         string     `json:"customerId" validate:"required"`
	CustomerName       string     `json:"customerName"`
	DoctorName         string     `json:"doctorName"`
	Medication         string     `json:"medication"`
	Dosage             string     `json:"dosage"`
	Quantity           int        `json:"quantity" validate:"gte=0"`
	Instructions       string     `json:"instructions,omitempty"`
	RefillsRemaining   int        `json:"refillsRemaining" validate:"gte=0"`
	Status             Status     `json:"status" validate:"required,oneof=pending in-progress ready completed cancelled"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	FilledAt           *time.Time `json:"filledAt,omitempty"`
}
