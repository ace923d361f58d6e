package domain

import (
	"time"

	"gorm.io/datatypes"
)

// AccountDetails holds payout instructions shown to paying users.
// Only the row with the highest id is current.
type AccountDetails struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Bank      datatypes.JSON `json:"bank"`
	Crypto    datatypes.JSON `json:"crypto"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type BankInfo struct {
	BankName      string `json:"bankName,omitempty"`
	AccountName   string `json:"accountName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	Swift         string `json:"swift,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// CryptoAddresses maps a lower-case currency code (btc, eth, usdt...) to an address.
type CryptoAddresses map[string]string

// DemoBankInfo and DemoCryptoAddresses are the placeholder payout details
// written on first boot.
func DemoBankInfo() BankInfo {
	return BankInfo{
		BankName:      "Demo Bank",
		AccountName:   "Demo Account",
		AccountNumber: "0123456789",
		Swift:         "",
		Notes:         "Local transfers only",
	}
}

func DemoCryptoAddresses() CryptoAddresses {
	return CryptoAddresses{
		"btc":  "1BoatSLRHtKNngkdXEeobR76b53LETtpyT",
		"eth":  "0x0000000000000000000000000000000000000000",
		"usdt": "TETHER-DEMO-ADDRESS",
	}
}
