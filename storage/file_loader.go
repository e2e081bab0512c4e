package storage

import (
	"context"
	"fmt"

	"borough-recommender/config"
	"borough-recommender/metrics"
	"borough-recommender/models"
	"borough-recommender/utils"
)

// FileLoader reads the three tables from files under the data directory.
type FileLoader struct {
	RentPath   string
	RentSheet  string
	VenuesPath string
	GroupsPath string

	logger  *utils.Logger
	workers int
}

// NewFileLoader builds a FileLoader from configuration.
func NewFileLoader(cfg *config.Config, logger *utils.Logger) *FileLoader {
	return &FileLoader{
		RentPath:   cfg.DataPath(cfg.RentFile),
		RentSheet:  cfg.RentSheet,
		VenuesPath: cfg.DataPath(cfg.VenuesFile),
		GroupsPath: cfg.DataPath(cfg.GroupsFile),
		logger:     logger,
		workers:    cfg.MaxConcurrency,
	}
}

// Load reads and parses the tables in parallel.
func (l *FileLoader) Load(ctx context.Context) (*models.Dataset, error) {
	var (
		rents   []models.RentRecord
		venues  []models.VenueRecord
		density *models.DensityTable
	)

	pool := utils.NewWorkerPool(l.workers)
	pool.Submit(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := readRows(l.RentPath, l.RentSheet)
		if err != nil {
			return fmt.Errorf("rents: %w", err)
		}
		rents, err = parseRents(rows, l.logger)
		return err
	})
	pool.Submit(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := readRows(l.VenuesPath, "")
		if err != nil {
			return fmt.Errorf("venues: %w", err)
		}
		venues, err = parseVenues(rows)
		return err
	})
	pool.Submit(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := readRows(l.GroupsPath, "")
		if err != nil {
			return fmt.Errorf("groups: %w", err)
		}
		density, err = parseDensity(rows)
		return err
	})
	if err := pool.Wait(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	ds := models.NewDataset(rents, venues, density)
	recordDatasetRows(ds)
	l.logger.Info("[loader] Loaded %d rent records, %d venues, %d density rows",
		len(rents), len(venues), density.Len())
	return ds, nil
}

func recordDatasetRows(ds *models.Dataset) {
	metrics.DatasetRows.WithLabelValues("rents").Set(float64(len(ds.Rents())))
	metrics.DatasetRows.WithLabelValues("venues").Set(float64(len(ds.Venues())))
	metrics.DatasetRows.WithLabelValues("density").Set(float64(ds.Density().Len()))
}
