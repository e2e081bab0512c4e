package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"borough-recommender/models"
	"borough-recommender/utils"
)

// readRows reads a CSV or XLSX file into raw rows. For XLSX, sheet selects
// the worksheet (first sheet when empty) and rows above the first row
// containing a "Borough" cell are skipped, since published workbooks carry
// title rows above the header.
func readRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readXLSXRows(path, sheet)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", path, err)
		}
		defer f.Close()
		return readCSVRows(f)
	}
}

func readCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSXRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %q has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	for i, row := range rows {
		for _, c := range row {
			if strings.EqualFold(strings.TrimSpace(c), "borough") {
				return rows[i:], nil
			}
		}
	}
	return nil, fmt.Errorf("sheet %q: no header row with a Borough column", sheet)
}

// parseRents converts rows into rent records. Rows with a missing quartile can
// never overlap a budget and are dropped.
func parseRents(rows [][]string, logger *utils.Logger) ([]models.RentRecord, error) {
	t, err := newTable("rents", rows)
	if err != nil {
		return nil, err
	}
	boroughCol, err := t.mustColumn("Borough", "Area")
	if err != nil {
		return nil, err
	}
	categoryCol, err := t.mustColumn("Category", "Bedroom Category")
	if err != nil {
		return nil, err
	}
	lowerCol, err := t.mustColumn("Lower quartile")
	if err != nil {
		return nil, err
	}
	medianCol, err := t.mustColumn("Median")
	if err != nil {
		return nil, err
	}
	upperCol, err := t.mustColumn("Upper quartile")
	if err != nil {
		return nil, err
	}
	countCol, _ := t.column("Count of rents", "Count")
	meanCol, _ := t.column("Mean", "Average")

	records := make([]models.RentRecord, 0, len(t.rows))
	dropped := 0
	for n, row := range t.rows {
		if blankRow(row) {
			continue
		}
		line := n + 2

		category, err := models.ParseAccommodationType(cell(row, categoryCol))
		if err != nil {
			return nil, fmt.Errorf("rents line %d: %w", line, err)
		}
		lower, err := parseMoney(cell(row, lowerCol))
		if err != nil {
			return nil, fmt.Errorf("rents line %d: lower quartile: %w", line, err)
		}
		upper, err := parseMoney(cell(row, upperCol))
		if err != nil {
			return nil, fmt.Errorf("rents line %d: upper quartile: %w", line, err)
		}
		median, err := parseMoney(cell(row, medianCol))
		if err != nil {
			return nil, fmt.Errorf("rents line %d: median: %w", line, err)
		}
		var mean *float64
		if meanCol >= 0 {
			mean, _ = parseMoney(cell(row, meanCol))
		}

		if lower == nil || upper == nil {
			dropped++
			continue
		}
		if *lower > *upper {
			return nil, fmt.Errorf("rents line %d: lower quartile %.2f above upper quartile %.2f", line, *lower, *upper)
		}

		records = append(records, models.RentRecord{
			Borough:       normaliseText(cell(row, boroughCol)),
			Category:      category,
			Count:         parseCount(cell(row, countCol)),
			Mean:          mean,
			LowerQuartile: *lower,
			Median:        median,
			UpperQuartile: *upper,
		})
	}

	if dropped > 0 {
		logger.Warn("[loader] Dropped %d rent rows with missing quartiles", dropped)
	}
	return records, nil
}

func parseVenues(rows [][]string) ([]models.VenueRecord, error) {
	t, err := newTable("venues", rows)
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int)
	for key, names := range map[string][]string{
		"borough":  {"Borough"},
		"blat":     {"BoroughLat", "Borough Latitude"},
		"blon":     {"BoroughLon", "Borough Longitude"},
		"venue":    {"Venue", "Name"},
		"lat":      {"Venue Latitude", "Latitude"},
		"lon":      {"Venue Longitude", "Longitude"},
		"category": {"Venue Category"},
		"group":    {"Group"},
	} {
		i, err := t.mustColumn(names...)
		if err != nil {
			return nil, err
		}
		cols[key] = i
	}

	venues := make([]models.VenueRecord, 0, len(t.rows))
	for n, row := range t.rows {
		if blankRow(row) {
			continue
		}
		line := n + 2

		group, err := models.ParseVenueGroup(cell(row, cols["group"]))
		if err != nil {
			return nil, fmt.Errorf("venues line %d: %w", line, err)
		}
		coords := make(map[string]float64, 4)
		for _, key := range []string{"blat", "blon", "lat", "lon"} {
			v, err := parseFloat(cell(row, cols[key]))
			if err != nil {
				return nil, fmt.Errorf("venues line %d: %s: %w", line, t.headers[cols[key]], err)
			}
			coords[key] = v
		}

		venues = append(venues, models.VenueRecord{
			Borough:          normaliseText(cell(row, cols["borough"])),
			BoroughLatitude:  coords["blat"],
			BoroughLongitude: coords["blon"],
			Name:             normaliseText(cell(row, cols["venue"])),
			Latitude:         coords["lat"],
			Longitude:        coords["lon"],
			VenueCategory:    normaliseText(cell(row, cols["category"])),
			Group:            group,
		})
	}
	return venues, nil
}

// parseDensity reads the borough x group matrix. Besides "Borough", every
// named column must be one of the venue groups and every group must be
// present. Unnamed columns (a saved index) are ignored.
func parseDensity(rows [][]string) (*models.DensityTable, error) {
	t, err := newTable("groups", rows)
	if err != nil {
		return nil, err
	}
	boroughCol, err := t.mustColumn("Borough")
	if err != nil {
		return nil, err
	}

	groupCols := make(map[models.VenueGroup]int, models.NumVenueGroups)
	for i, h := range t.headers {
		if i == boroughCol || h == "" {
			continue
		}
		g, err := models.ParseVenueGroup(h)
		if err != nil {
			return nil, fmt.Errorf("groups: column %d: %w", i+1, err)
		}
		if _, dup := groupCols[g]; dup {
			return nil, fmt.Errorf("groups: duplicate column %q", h)
		}
		groupCols[g] = i
	}
	for _, g := range models.AllVenueGroups() {
		if _, ok := groupCols[g]; !ok {
			return nil, fmt.Errorf("groups: missing column %q", g)
		}
	}

	density := make([]models.DensityRow, 0, len(t.rows))
	for n, row := range t.rows {
		if blankRow(row) {
			continue
		}
		dr := models.DensityRow{Borough: normaliseText(cell(row, boroughCol))}
		for g, col := range groupCols {
			v, err := parseFloat(cell(row, col))
			if err != nil {
				return nil, fmt.Errorf("groups line %d: %s: %w", n+2, g, err)
			}
			dr.Scores[g] = v
		}
		density = append(density, dr)
	}
	return models.NewDensityTable(density)
}
