package storage

import (
	"context"

	"borough-recommender/models"
)

// DatasetLoader is the interface any table source must satisfy.
type DatasetLoader interface {
	Load(ctx context.Context) (*models.Dataset, error)
}

// DatasetWriter persists a dataset, replacing what was stored before.
type DatasetWriter interface {
	WriteDataset(ctx context.Context, ds *models.Dataset) error
	Close() error
}

// RecommendationWriter exports ranked results.
type RecommendationWriter interface {
	WriteRecommendation(rec *models.Recommendation) error
	Close() error
}
