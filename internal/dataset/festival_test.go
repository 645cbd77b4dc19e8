package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFestivalCSV(t *testing.T) {
	input := strings.Join([]string{
		"Festival,Date,impact_score",
		"Diwali,2024-11-01,3",
		"Holi,2024-03-25,2.5",
		"Unknown,not-a-date,9",
		"Eid,2024-04-10,",
	}, "\n")

	events, err := ParseFestivalCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), events[0].Date)
	assert.Equal(t, 3.0, events[0].Impact)
	assert.Equal(t, 2.5, events[1].Impact)
	// Blank impact defaults to 1.
	assert.Equal(t, 1.0, events[2].Impact)
}

func TestParseFestivalCSV_MissingDateColumn(t *testing.T) {
	input := "Festival,impact_score\nDiwali,3\n"

	_, err := ParseFestivalCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date column")
}

func TestParseFestivalCSV_EmptyInput(t *testing.T) {
	_, err := ParseFestivalCSV(strings.NewReader(""))
	assert.Error(t, err)
}
