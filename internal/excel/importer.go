package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/guitarcoach/pkg/models"
)

// SessionWriter receives imported sessions
type SessionWriter interface {
	AppendSession(ctx context.Context, s *models.PracticeSession) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	CategoryColumn string // Column with the category (chords, scales...)
	ItemIDColumn   string // Column with the item id
	ItemNameColumn string // Column with the display name
	DurationColumn string // Column with the duration: "90s", "15m", or plain minutes
	DateColumn     string // Column with the practice date
	NotesColumn    string // Column with free-form notes
	SheetName      string // Name of the sheet to import
	StartRow       int    // The row to start importing from (1-based index)
	Location       *time.Location
}

// DefaultImportConfig returns the default import configuration, matching the
// layout written by Export
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		CategoryColumn: "B",
		ItemIDColumn:   "C",
		ItemNameColumn: "D",
		DurationColumn: "E",
		DateColumn:     "F",
		NotesColumn:    "G",
		SheetName:      SheetSessions,
		StartRow:       2, // By default, start from the second row (skip header)
		Location:       time.Local,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

var errBlankRow = errors.New("blank row")

// ImportSessions imports practice sessions from an Excel or CSV file
func ImportSessions(ctx context.Context, config ImportConfig, w SessionWriter) (*ImportResult, error) {
	if config.Location == nil {
		config.Location = time.Local
	}
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return importFromCSV(ctx, config, w)
	}
	return importFromExcel(ctx, config, w)
}

// importFromExcel imports sessions from an Excel file
func importFromExcel(ctx context.Context, config ImportConfig, w SessionWriter) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return importRows(ctx, rows, config, w)
}

// importFromCSV imports sessions from a CSV file laid out like the Excel sheet
func importFromCSV(ctx context.Context, config ImportConfig, w SessionWriter) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return importRows(ctx, rows, config, w)
}

func importRows(ctx context.Context, rows [][]string, config ImportConfig, w SessionWriter) (*ImportResult, error) {
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		session, err := parseRow(row, config)
		if errors.Is(err, errBlankRow) {
			continue
		}
		result.TotalProcessed++
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}

		if err := w.AppendSession(ctx, session); err != nil {
			return result, fmt.Errorf("row %d: failed to save session: %w", i+1, err)
		}
		result.Created++
	}
	return result, nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseRow converts one row into a session
func parseRow(row []string, config ImportConfig) (*models.PracticeSession, error) {
	blank := true
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, errBlankRow
	}

	category := models.Category(strings.ToLower(cell(row, config.CategoryColumn)))
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	itemID := cell(row, config.ItemIDColumn)
	itemName := cell(row, config.ItemNameColumn)
	if itemID == "" {
		itemID = slug(itemName)
	}
	if itemID == "" {
		return nil, fmt.Errorf("item cannot be empty")
	}
	if itemName == "" {
		itemName = itemID
	}

	duration, err := parseDuration(cell(row, config.DurationColumn))
	if err != nil {
		return nil, err
	}

	date, err := parseDate(cell(row, config.DateColumn), config.Location)
	if err != nil {
		return nil, err
	}

	s := &models.PracticeSession{
		Category: category,
		ItemID:   itemID,
		ItemName: itemName,
		Duration: duration,
		Date:     date,
	}
	if notes := cell(row, config.NotesColumn); notes != "" {
		s.Notes = &notes
	}
	return s, nil
}

// parseDuration reads "90s", "1h5m" or plain minutes into seconds
func parseDuration(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("duration cannot be empty")
	}
	if minutes, err := strconv.ParseFloat(value, 64); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("duration cannot be negative")
		}
		return int(minutes * 60), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", value)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration cannot be negative")
	}
	return int(d.Seconds()), nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06", // excelize default date cell format
	"1/2/2006",
	"2006/01/02",
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// slug turns a display name into an item id: "C Major" -> "c-major"
func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case r == '#':
			b.WriteByte('s')
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
