package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eksiir/risk-categories-microservice/internal/riskcategory/models"
	"github.com/eksiir/risk-categories-microservice/pkg/sentinel"
)

// Unavailable is the Store used when no connection could be established at
// startup. Every operation fails with ErrUnavailable, which request paths
// surface as 500 while the readiness registry keeps reporting not-ready.
type Unavailable struct{}

func (Unavailable) err() error {
	return fmt.Errorf("document store: %w", sentinel.ErrUnavailable)
}

func (u Unavailable) Count(ctx context.Context, f Filter) (int64, error) {
	return 0, u.err()
}

func (u Unavailable) Insert(ctx context.Context, rc *models.RiskCategory) (*models.RiskCategory, error) {
	return nil, u.err()
}

func (u Unavailable) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RiskCategory, error) {
	return nil, u.err()
}

func (u Unavailable) Find(ctx context.Context, f Filter) ([]*models.RiskCategory, error) {
	return nil, u.err()
}

func (u Unavailable) UpdateByID(ctx context.Context, id primitive.ObjectID, p Patch) (*models.RiskCategory, error) {
	return nil, u.err()
}
