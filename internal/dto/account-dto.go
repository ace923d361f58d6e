package dto

import "github.com/SundayYogurt/claim_service/internal/domain"

type AccountDetailsRequest struct {
	Bank   *domain.BankInfo       `json:"bank"`
	Crypto domain.CryptoAddresses `json:"crypto"`
}

// AccountDetailsResponse carries already-canonicalized payloads, so the
// fields stay untyped: a stored value that fails to decode is returned as
// its original string.
type AccountDetailsResponse struct {
	Bank   any `json:"bank"`
	Crypto any `json:"crypto"`
}
