package logic

import (
	"context"

	"github.com/draftkit/valuation-api/internal/models"
)

// ValuationService runs the scoring → ranking → replacement → market pipeline.
type ValuationService interface {
	Run(ctx context.Context, in Inputs) (*models.Valuation, error)
}
