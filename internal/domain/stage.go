package domain

import "strings"

// ReminderStage is the position of a reminder in its notification lifecycle.
// Stages only move forward; "done" is represented by deleting the reminder.
type ReminderStage int

const (
	StageCreated ReminderStage = iota
	StageNotified2Day
	StageNotified1Day
)

var stageLabels = map[ReminderStage]string{
	StageCreated:      "created",
	StageNotified2Day: "notified_2_day",
	StageNotified1Day: "notified_1_day",
}

var stageCodes = map[string]ReminderStage{
	"created":        StageCreated,
	"notified_2_day": StageNotified2Day,
	"notified_1_day": StageNotified1Day,
}

func (s ReminderStage) String() string {
	if label, ok := stageLabels[s]; ok {
		return label
	}

	return "created"
}

// ParseReminderStage returns the stage for a given label (case-insensitive).
func ParseReminderStage(label string) (ReminderStage, bool) {
	stage, ok := stageCodes[strings.ToLower(label)]

	return stage, ok
}

// NotificationKind identifies the message template for a reminder bucket.
type NotificationKind string

const (
	KindTwoDay       NotificationKind = "two_day"
	KindOneDay       NotificationKind = "one_day"
	KindToday        NotificationKind = "today"
	KindOverdue      NotificationKind = "overdue"
	KindConfirmation NotificationKind = "confirmation"
)

// StageAction describes what a tick must do with one reminder.
type StageAction struct {
	Notify   bool
	Kind     NotificationKind
	NewStage ReminderStage
	Delete   bool
}

// Transition evaluates the stage table for one reminder given the days
// remaining until its stockout date. A stage never regresses, so re-running
// a tick after a committed advance yields no action.
func Transition(stage ReminderStage, daysLeft int) StageAction {
	switch {
	case daysLeft < 0:
		return StageAction{Notify: true, Kind: KindOverdue, Delete: true}
	case daysLeft == 0:
		return StageAction{Notify: true, Kind: KindToday, Delete: true}
	case daysLeft == 1 && stage < StageNotified1Day:
		return StageAction{Notify: true, Kind: KindOneDay, NewStage: StageNotified1Day}
	case daysLeft == 2 && stage < StageNotified2Day:
		return StageAction{Notify: true, Kind: KindTwoDay, NewStage: StageNotified2Day}
	default:
		return StageAction{NewStage: stage}
	}
}
