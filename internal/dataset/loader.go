package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cinema-engine/backend/internal/config"
)

// MovieRecord is one row of the catalog: a title and the plot text that
// gets indexed. ID is the row position in the source file.
type MovieRecord struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Plot  string `json:"plot"`
}

// Loader reads the movie catalog from a CSV file with a header row
type Loader struct {
	cfg    config.DatasetConfig
	logger *logrus.Entry
}

func NewLoader(cfg config.DatasetConfig, logger *logrus.Entry) *Loader {
	return &Loader{
		cfg:    cfg,
		logger: logger,
	}
}

// Load reads the configured CSV file and returns its records in file order
func (l *Loader) Load() ([]MovieRecord, error) {
	file, err := os.Open(l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	records, err := l.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.cfg.Path, err)
	}

	l.logger.Infof("Loaded %d records from %s", len(records), l.cfg.Path)
	return records, nil
}

// Parse reads CSV rows from r. The first row must be a header containing
// the configured title and plot columns; other columns are ignored. Plot
// bodies are stripped of any HTML markup before they are returned.
func (l *Loader) Parse(r io.Reader) ([]MovieRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	titleIdx, plotIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case l.cfg.TitleColumn:
			titleIdx = i
		case l.cfg.PlotColumn:
			plotIdx = i
		}
	}
	if titleIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header", l.cfg.TitleColumn)
	}
	if plotIdx < 0 {
		return nil, fmt.Errorf("column %q not found in header", l.cfg.PlotColumn)
	}

	var records []MovieRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}

		records = append(records, MovieRecord{
			ID:    len(records),
			Title: strings.TrimSpace(row[titleIdx]),
			Plot:  StripHTML(row[plotIdx]),
		})

		if l.cfg.MaxRecords > 0 && len(records) >= l.cfg.MaxRecords {
			l.logger.Warnf("Record cap reached, truncating dataset at %d rows", l.cfg.MaxRecords)
			break
		}
	}

	return records, nil
}
