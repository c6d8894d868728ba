package handlers

import (
	"context"

	"bidding/db"
	"bidding/models"
)

type StorageInterface interface {
	CreateBidding(ctx context.Context, b *models.BiddingRecord) error
	GetBidding(ctx context.Context, id string) (*models.BiddingRecord, error)
	GetBiddings(ctx context.Context, status models.BiddingStatus, limit, offset int) ([]models.BiddingRecord, error)
	UpdateBidding(ctx context.Context, b *models.BiddingRecord) error
	UpdateBiddingStatus(ctx context.Context, id string, status models.BiddingStatus, expectedVersion int) error
	DeleteBidding(ctx context.Context, id string) error

	CreateParticipation(ctx context.Context, p *models.Participation) error
	GetParticipation(ctx context.Context, id string) (*models.Participation, error)
	SaveEvaluation(ctx context.Context, e *models.Evaluation) error
	SelectWinner(ctx context.Context, biddingID, participationID string) error

	CreateContract(ctx context.Context, c *db.Contract) error
	CreateOrder(ctx context.Context, o *db.Order) error
}
