package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name     string
		stage    ReminderStage
		daysLeft int
		want     StageAction
	}{
		{
			name:     "far future is a no-op",
			stage:    StageCreated,
			daysLeft: 10,
			want:     StageAction{NewStage: StageCreated},
		},
		{
			name:     "two days out notifies and advances",
			stage:    StageCreated,
			daysLeft: 2,
			want:     StageAction{Notify: true, Kind: KindTwoDay, NewStage: StageNotified2Day},
		},
		{
			name:     "two days out already notified",
			stage:    StageNotified2Day,
			daysLeft: 2,
			want:     StageAction{NewStage: StageNotified2Day},
		},
		{
			name:     "one day out notifies and advances",
			stage:    StageNotified2Day,
			daysLeft: 1,
			want:     StageAction{Notify: true, Kind: KindOneDay, NewStage: StageNotified1Day},
		},
		{
			name:     "one day out skips the two-day stage",
			stage:    StageCreated,
			daysLeft: 1,
			want:     StageAction{Notify: true, Kind: KindOneDay, NewStage: StageNotified1Day},
		},
		{
			name:     "one day out already notified",
			stage:    StageNotified1Day,
			daysLeft: 1,
			want:     StageAction{NewStage: StageNotified1Day},
		},
		{
			name:     "due today deletes regardless of stage",
			stage:    StageNotified1Day,
			daysLeft: 0,
			want:     StageAction{Notify: true, Kind: KindToday, Delete: true},
		},
		{
			name:     "overdue deletes even when never notified",
			stage:    StageCreated,
			daysLeft: -3,
			want:     StageAction{Notify: true, Kind: KindOverdue, Delete: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Transition(tc.stage, tc.daysLeft))
		})
	}
}

func TestReminderStageString(t *testing.T) {
	assert.Equal(t, "created", StageCreated.String())
	assert.Equal(t, "notified_2_day", StageNotified2Day.String())
	assert.Equal(t, "notified_1_day", StageNotified1Day.String())
	// Unknown values fall back to the initial stage label.
	assert.Equal(t, "created", ReminderStage(99).String())
}

func TestParseReminderStage(t *testing.T) {
	stage, ok := ParseReminderStage("Notified_2_Day")
	assert.True(t, ok)
	assert.Equal(t, StageNotified2Day, stage)

	_, ok = ParseReminderStage("done")
	assert.False(t, ok)
}

func TestClassifyStock(t *testing.T) {
	assert.Equal(t, StatusUnderstock, ClassifyStock(0))
	assert.Equal(t, StatusUnderstock, ClassifyStock(6))
	assert.Equal(t, StatusFine, ClassifyStock(7))
	assert.Equal(t, StatusFine, ClassifyStock(60))
	assert.Equal(t, StatusOverstock, ClassifyStock(61))
}
