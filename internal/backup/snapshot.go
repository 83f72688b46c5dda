package backup

import (
	"time"

	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

// Snapshot is the full-database backup document. On import a nil collection
// means "leave the stored one alone"; an empty one clears it.
type Snapshot struct {
	Products      []*product.Product           `json:"products"`
	Customers     []*customer.Customer         `json:"customers"`
	Prescriptions []*prescription.Prescription `json:"prescriptions"`
	Transactions  []*transaction.Transaction   `json:"transactions"`
	Settings      *settings.Settings           `json:"settings"`
	ExportDate    time.Time                    `json:"exportDate"`
}
