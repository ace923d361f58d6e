package dto

import "encoding/json"

// LegacyDocument is the file written by the old document store.
// Only the submissions array is imported.
type LegacyDocument struct {
	Submissions json.RawMessage `json:"submissions"`
}

// LegacySubmission is one record of the old store. Every field is optional
// and loosely typed; the migrator normalizes them.
type LegacySubmission struct {
	ID              json.RawMessage `json:"id"`
	Name            *string         `json:"name"`
	Email           *string         `json:"email"`
	Method          string          `json:"method"`
	SelectedNetwork *string         `json:"selectedNetwork"`
	Amount          json.RawMessage `json:"amount"`
	TxID            *string         `json:"txid"`
	IDFileURL       *string         `json:"idFileUrl"`
	PaymentProofURL *string         `json:"paymentProofUrl"`
	Status          string          `json:"status"`
	CreatedAt       json.RawMessage `json:"createdAt"`
}
