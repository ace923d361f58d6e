package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "pending"
	SubmissionStatusConfirmed SubmissionStatus = "confirmed" // set by admin, terminal
)

type PaymentMethod string

const (
	PaymentMethodWire   PaymentMethod = "wire"
	PaymentMethodCrypto PaymentMethod = "crypto"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodWire || m == PaymentMethodCrypto
}

// Submission is a user payment claim. The id is an opaque random token.
type Submission struct {
	ID              string              `gorm:"type:varchar(32);primaryKey" json:"id"`
	Name            *string             `gorm:"type:varchar(255)" json:"name"`
	Email           *string             `gorm:"type:varchar(255)" json:"email"`
	Method          PaymentMethod       `gorm:"type:varchar(10);not null;default:'crypto'" json:"method"`
	SelectedNetwork *string             `gorm:"type:varchar(50)" json:"selected_network,omitempty"`
	Amount          decimal.NullDecimal `gorm:"type:decimal(20,2)" json:"amount"`
	TxID            *string             `gorm:"column:txid;type:varchar(255)" json:"txid,omitempty"`

	// file references (static path or remote URL)
	IDFileURL       *string `gorm:"type:varchar(512)" json:"id_file_url,omitempty"`
	PaymentProofURL *string `gorm:"type:varchar(512)" json:"payment_proof_url,omitempty"`

	Status    SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time        `gorm:"not null;index" json:"created_at"`
}
