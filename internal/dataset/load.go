package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/launchdash/internal/csvutil"
)

// Logical column names after csvutil.NormalizeHeader.
const (
	ColumnLaunchSite             = "launch_site"
	ColumnPayloadMassKg          = "payload_mass_kg"
	ColumnBoosterVersionCategory = "booster_version_category"
	ColumnClass                  = "class"
)

var requiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMassKg,
	ColumnBoosterVersionCategory,
	ColumnClass,
}

// Load reads the dataset at path. CSV is the default format; .db, .sqlite and
// .sqlite3 files are read as snapshots written by WriteSQLite.
func Load(ctx context.Context, path string) (*Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &LoadError{Op: "open", Err: errors.New("dataset path cannot be empty")}
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", "":
		f, err := os.Open(path)
		if err != nil {
			return nil, &LoadError{Path: path, Op: "open", Err: err}
		}
		defer f.Close()
		ds, err := LoadCSV(f)
		if err != nil {
			return nil, loadErr(path, "read csv", err)
		}
		return ds, nil
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, &LoadError{Path: path, Op: "open", Err: fmt.Errorf("%w %q", ErrUnsupportedFormat, filepath.Ext(path))}
	}
}

// LoadCSV parses a launch table with a header row.
func LoadCSV(r io.Reader) (*Dataset, error) {
	reader := csvutil.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Op: "read header", Err: fmt.Errorf("%w: empty input", ErrMissingColumn)}
		}
		return nil, &LoadError{Op: "read header", Err: err}
	}
	index := csvutil.HeaderIndex(header)
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &LoadError{Op: "read header", Err: fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))}
	}

	var records []LaunchRecord
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &LoadError{Op: fmt.Sprintf("read row %d", line), Err: err}
		}
		if blankRow(row) {
			continue
		}
		rec, err := parseRow(row, index)
		if err != nil {
			return nil, &LoadError{Op: fmt.Sprintf("parse row %d", line), Err: err}
		}
		records = append(records, rec)
	}
	ds := &Dataset{records: records}
	ds.index()
	return ds, nil
}

func parseRow(row []string, index map[string]int) (LaunchRecord, error) {
	field := func(col string) (string, error) {
		pos := index[col]
		if pos >= len(row) {
			return "", fmt.Errorf("%w: column %s missing from row", ErrMalformedValue, col)
		}
		return strings.TrimSpace(row[pos]), nil
	}
	site, err := field(ColumnLaunchSite)
	if err != nil {
		return LaunchRecord{}, err
	}
	booster, err := field(ColumnBoosterVersionCategory)
	if err != nil {
		return LaunchRecord{}, err
	}
	rawPayload, err := field(ColumnPayloadMassKg)
	if err != nil {
		return LaunchRecord{}, err
	}
	payload, err := strconv.ParseFloat(rawPayload, 64)
	if err != nil || math.IsNaN(payload) || math.IsInf(payload, 0) {
		return LaunchRecord{}, fmt.Errorf("%w: payload mass %q", ErrMalformedValue, rawPayload)
	}
	rawClass, err := field(ColumnClass)
	if err != nil {
		return LaunchRecord{}, err
	}
	class, err := parseClass(rawClass)
	if err != nil {
		return LaunchRecord{}, err
	}
	return LaunchRecord{
		LaunchSite:             site,
		PayloadMassKg:          payload,
		BoosterVersionCategory: booster,
		OutcomeClass:           class,
	}, nil
}

func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: class %q", ErrMalformedValue, raw)
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: class %q (expected 0 or 1)", ErrMalformedValue, raw)
	}
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
