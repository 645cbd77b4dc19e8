package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/inventopredict/backend-go/internal/domain"
)

// LoadFestivalCSV reads a festival calendar CSV with Date and impact_score
// columns. Rows with unparsable dates are skipped. Missing impact defaults
// to 1, matching the source calendar.
func LoadFestivalCSV(path string) ([]FestivalEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewDataError("cannot open festival calendar %s: %v", path, err)
	}
	defer f.Close()

	return ParseFestivalCSV(f)
}

// ParseFestivalCSV parses festival calendar rows from r.
func ParseFestivalCSV(r io.Reader) ([]FestivalEvent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, domain.NewDataError("festival calendar has no header: %v", err)
	}

	idxDate := colIndex(header, "date")
	idxImpact := colIndex(header, "impact_score", "impact")
	if idxDate < 0 {
		return nil, domain.NewDataError("festival calendar missing date column")
	}

	var events []FestivalEvent
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, domain.NewDataError("festival calendar read failed: %v", err)
		}

		date := ParseDate(cell(record, idxDate))
		if date.IsZero() {
			continue
		}

		impact := 1.0
		if idxImpact >= 0 && cell(record, idxImpact) != "" {
			impact = parseFloatCell(record, idxImpact)
		}

		events = append(events, FestivalEvent{Date: date, Impact: impact})
	}

	return events, nil
}
