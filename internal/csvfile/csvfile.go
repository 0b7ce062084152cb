package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Column names the tool requires in the input spreadsheet. Extra
// columns are ignored.
const (
	ColPriority    = "Priority"
	ColDescription = "Description of issue"
	ColNotes       = "Additional notes"
	ColPlatformURL = "Platform/URL"
	ColTitle       = "Title"
)

// RequiredColumns is the column set validated before any row is processed.
var RequiredColumns = []string{
	ColPriority,
	ColDescription,
	ColNotes,
	ColPlatformURL,
	ColTitle,
}

// Row is one data row of the spreadsheet, keyed by column name.
type Row map[string]string

// ValidateHeader checks that the header contains no duplicate column
// names and no missing required column. Empty header cells are ignored.
func ValidateHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		if col == "" {
			continue
		}
		if seen[col] {
			return fmt.Errorf("column %q appears more than once in csv header", col)
		}
		seen[col] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("expected columns are missing from csv: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads the CSV at path, validates its header and returns the data
// rows whose Priority column equals priority, in file order.
func Load(path, priority string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close() // nolint:errcheck

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are tolerated, short cells read as empty

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s has no header row", path)
	}

	header := records[0]
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}

	var rows []Row
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		if row[ColPriority] == priority {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
