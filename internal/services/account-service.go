package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/SundayYogurt/claim_service/internal/domain"
	"github.com/SundayYogurt/claim_service/internal/dto"
	"github.com/SundayYogurt/claim_service/internal/helper"
	"github.com/SundayYogurt/claim_service/internal/repository"
	"github.com/SundayYogurt/claim_service/pkg/errno"
	"github.com/SundayYogurt/claim_service/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type AccountService interface {
	// Get returns nil when no record exists yet.
	Get(ctx context.Context) (*dto.AccountDetailsResponse, error)
	Set(ctx context.Context, input dto.AccountDetailsRequest) error
}

type accountService struct {
	repo repository.AccountDetailsRepository
}

func NewAccountService(repo repository.AccountDetailsRepository) AccountService {
	return &accountService{repo: repo}
}

func (s *accountService) Get(ctx context.Context) (*dto.AccountDetailsResponse, error) {
	current, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, errno.ErrServer
	}
	if current == nil {
		return nil, nil
	}

	return &dto.AccountDetailsResponse{
		Bank:   helper.DecodeJSONValue(current.Bank),
		Crypto: helper.DecodeJSONValue(current.Crypto),
	}, nil
}

// Set replaces both sub-documents of the current record. A missing bank or
// crypto part is stored as an empty object.
func (s *accountService) Set(ctx context.Context, input dto.AccountDetailsRequest) error {
	bank := domain.BankInfo{}
	if input.Bank != nil {
		bank = trimBank(*input.Bank)
	}
	crypto := normalizeCrypto(input.Crypto)

	bankJSON, err := json.Marshal(bank)
	if err != nil {
		return errno.ErrServer
	}
	cryptoJSON, err := json.Marshal(crypto)
	if err != nil {
		return errno.ErrServer
	}

	if err := s.repo.SaveCurrent(ctx, datatypes.JSON(bankJSON), datatypes.JSON(cryptoJSON)); err != nil {
		return errno.ErrServer
	}
	logger.Info("account details updated", zap.Int("crypto_networks", len(crypto)))
	return nil
}

func trimBank(b domain.BankInfo) domain.BankInfo {
	return domain.BankInfo{
		BankName:      strings.TrimSpace(b.BankName),
		AccountName:   strings.TrimSpace(b.AccountName),
		AccountNumber: strings.TrimSpace(b.AccountNumber),
		Swift:         strings.TrimSpace(b.Swift),
		Notes:         strings.TrimSpace(b.Notes),
	}
}

// normalizeCrypto lower-cases currency codes and drops blank keys.
func normalizeCrypto(in domain.CryptoAddresses) domain.CryptoAddresses {
	out := domain.CryptoAddresses{}
	for k, v := range in {
		code := strings.ToLower(strings.TrimSpace(k))
		if code == "" {
			continue
		}
		out[code] = strings.TrimSpace(v)
	}
	return out
}
