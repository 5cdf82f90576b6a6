package contract

import (
	"context"
	"fmt"
	"time"

	contractRepo "rentify/database/repository/contract"
	"rentify/models"
	"rentify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContractService issues the settlement document that closes a contract.
type ContractService interface {
	CreateFinalContract(ctx context.Context, contractID, bookingID string, timeFinish time.Time, costSettlement models.Amount, note string) (*models.FinalContract, error)
	GetFinalContract(ctx context.Context, contractID string) (*models.FinalContract, error)
}

type DefaultContractService struct {
	Repo contractRepo.ContractRepository
}

func (s *DefaultContractService) CreateFinalContract(
	ctx context.Context,
	contractID, bookingID string,
	timeFinish time.Time,
	costSettlement models.Amount,
	note string,
) (*models.FinalContract, error) {
	final := &models.FinalContract{
		ID:             uuid.NewString(),
		ContractID:     contractID,
		BookingID:      bookingID,
		TimeFinish:     timeFinish,
		CostSettlement: costSettlement,
		Note:           note,
		CreatedAt:      time.Now(),
	}
	if err := s.Repo.CreateFinal(ctx, final); err != nil {
		return nil, fmt.Errorf("CreateFinalContract: %w", err)
	}

	utils.GetLogger().Info("final contract issued",
		zap.String("contractId", contractID),
		zap.String("bookingId", bookingID),
		zap.Stringer("costSettlement", costSettlement))
	return final, nil
}

func (s *DefaultContractService) GetFinalContract(ctx context.Context, contractID string) (*models.FinalContract, error) {
	return s.Repo.GetFinalByContract(ctx, contractID)
}
