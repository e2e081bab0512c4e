package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"borough-recommender/models"
	"borough-recommender/utils"
)

const batchSize = 50

// PostgresStore keeps the three tables in PostgreSQL. It is both a
// DatasetWriter (import) and a DatasetLoader (serve).
type PostgresStore struct {
	db     *sqlx.DB
	logger *utils.Logger
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(ctx context.Context, dsn string, maxRetries int, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: maxRetries, BaseDelay: 2 * time.Second, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db, logger: logger}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS rent_records (
			id             SERIAL PRIMARY KEY,
			borough        TEXT          NOT NULL,
			category       VARCHAR(32)   NOT NULL,
			count          INTEGER       NOT NULL DEFAULT 0,
			mean           NUMERIC(10,2),
			lower_quartile NUMERIC(10,2) NOT NULL,
			median         NUMERIC(10,2),
			upper_quartile NUMERIC(10,2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS venues (
			id                SERIAL PRIMARY KEY,
			borough           TEXT             NOT NULL,
			borough_latitude  DOUBLE PRECISION NOT NULL,
			borough_longitude DOUBLE PRECISION NOT NULL,
			name              TEXT             NOT NULL,
			latitude          DOUBLE PRECISION NOT NULL,
			longitude         DOUBLE PRECISION NOT NULL,
			venue_category    TEXT             NOT NULL DEFAULT '',
			venue_group       VARCHAR(32)      NOT NULL
		);

		CREATE TABLE IF NOT EXISTS borough_density (
			position    INTEGER          NOT NULL,
			borough     TEXT             NOT NULL,
			venue_group VARCHAR(32)      NOT NULL,
			score       DOUBLE PRECISION NOT NULL CHECK (score >= 0),
			PRIMARY KEY (borough, venue_group)
		);

		CREATE INDEX IF NOT EXISTS idx_rent_records_category ON rent_records(category);
		CREATE INDEX IF NOT EXISTS idx_venues_borough        ON venues(borough);
	`)
	return err
}

// WriteDataset replaces all stored tables with ds in a single transaction.
func (ps *PostgresStore) WriteDataset(ctx context.Context, ds *models.Dataset) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rent_records; DELETE FROM venues; DELETE FROM borough_density"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	rentRows := make([][]any, 0, len(ds.Rents()))
	for _, r := range ds.Rents() {
		rentRows = append(rentRows, []any{
			r.Borough, string(r.Category), r.Count, r.Mean, r.LowerQuartile, r.Median, r.UpperQuartile,
		})
	}
	if err := insertBatches(ctx, tx, "rent_records",
		[]string{"borough", "category", "count", "mean", "lower_quartile", "median", "upper_quartile"},
		rentRows); err != nil {
		return err
	}

	venueRows := make([][]any, 0, len(ds.Venues()))
	for _, v := range ds.Venues() {
		venueRows = append(venueRows, []any{
			v.Borough, v.BoroughLatitude, v.BoroughLongitude, v.Name,
			v.Latitude, v.Longitude, v.VenueCategory, v.Group.String(),
		})
	}
	if err := insertBatches(ctx, tx, "venues",
		[]string{"borough", "borough_latitude", "borough_longitude", "name", "latitude", "longitude", "venue_category", "venue_group"},
		venueRows); err != nil {
		return err
	}

	density := ds.Density()
	densityRows := make([][]any, 0, density.Len()*models.NumVenueGroups)
	for i := 0; i < density.Len(); i++ {
		row := density.Row(i)
		for _, g := range models.AllVenueGroups() {
			densityRows = append(densityRows, []any{i, row.Borough, g.String(), row.Scores[g]})
		}
	}
	if err := insertBatches(ctx, tx, "borough_density",
		[]string{"position", "borough", "venue_group", "score"},
		densityRows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	ps.logger.Info("[postgres] Stored %d rent records, %d venues, %d density rows",
		len(rentRows), len(venueRows), density.Len())
	return nil
}

func insertBatches(ctx context.Context, tx *sqlx.Tx, table string, columns []string, rows [][]any) error {
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		args := make([]any, 0, len(batch)*len(columns))
		for _, r := range batch {
			args = append(args, r...)
		}
		if _, err := tx.ExecContext(ctx, buildInsert(table, columns, len(batch)), args...); err != nil {
			return fmt.Errorf("postgres: insert %s: %w", table, err)
		}
	}
	return nil
}

// buildInsert returns a multi-row INSERT with numbered placeholders.
func buildInsert(table string, columns []string, rows int) string {
	valueStrings := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		ph := make([]string, len(columns))
		for c := range columns {
			ph[c] = fmt.Sprintf("$%d", r*len(columns)+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(valueStrings, ","))
}

type venueRow struct {
	models.VenueRecord
	GroupName string `db:"venue_group"`
}

type densityCell struct {
	Position int     `db:"position"`
	Borough  string  `db:"borough"`
	Group    string  `db:"venue_group"`
	Score    float64 `db:"score"`
}

// Load reads the stored tables back in insertion order.
func (ps *PostgresStore) Load(ctx context.Context) (*models.Dataset, error) {
	var rents []models.RentRecord
	if err := ps.db.SelectContext(ctx, &rents, `
		SELECT borough, category, count, mean, lower_quartile, median, upper_quartile
		FROM rent_records
		ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("postgres: fetch rents: %w", err)
	}

	var vrows []venueRow
	if err := ps.db.SelectContext(ctx, &vrows, `
		SELECT borough, borough_latitude, borough_longitude, name, latitude, longitude, venue_category, venue_group
		FROM venues
		ORDER BY id
	`); err != nil {
		return nil, fmt.Errorf("postgres: fetch venues: %w", err)
	}
	venues := make([]models.VenueRecord, len(vrows))
	for i, vr := range vrows {
		g, err := models.ParseVenueGroup(vr.GroupName)
		if err != nil {
			return nil, fmt.Errorf("postgres: venue %q: %w", vr.Name, err)
		}
		venues[i] = vr.VenueRecord
		venues[i].Group = g
	}

	var cells []densityCell
	if err := ps.db.SelectContext(ctx, &cells, `
		SELECT position, borough, venue_group, score
		FROM borough_density
		ORDER BY position, venue_group
	`); err != nil {
		return nil, fmt.Errorf("postgres: fetch density: %w", err)
	}
	density, err := assembleDensity(cells)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ds := models.NewDataset(rents, venues, density)
	recordDatasetRows(ds)
	ps.logger.Info("[postgres] Loaded %d rent records, %d venues, %d density rows",
		len(rents), len(venues), density.Len())
	return ds, nil
}

// assembleDensity folds long-format cells, ordered by position, into rows.
func assembleDensity(cells []densityCell) (*models.DensityTable, error) {
	var rows []models.DensityRow
	last := -1
	for _, c := range cells {
		g, err := models.ParseVenueGroup(c.Group)
		if err != nil {
			return nil, fmt.Errorf("density %q: %w", c.Borough, err)
		}
		if c.Position != last {
			rows = append(rows, models.DensityRow{Borough: c.Borough})
			last = c.Position
		}
		rows[len(rows)-1].Scores[g] = c.Score
	}
	return models.NewDensityTable(rows)
}

func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
