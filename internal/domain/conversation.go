package domain

import "time"

// Step represents the current position of a chat in a dialog flow
type Step int

const (
	StepIdle Step = iota
	StepAwaitingName
	StepChoosingMonth // review: month picker shown
	StepChoosingDay   // entry: day grid shown
	StepAwaitingStartTime
	StepAwaitingEndTime
	StepViewingDay // record details with delete/change buttons
)

// Action marks what a completed time-entry dialog should do with its data
type Action string

const (
	ActionNew    Action = "new"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Conversation holds the ephemeral dialog state of one chat.
// It is created on the first event of a flow and discarded whenever
// the flow reaches StepIdle, is superseded, or goes stale.
type Conversation struct {
	ChatID    int64
	Step      Step
	Action    Action
	Date      string // chosen date DD-MM-YYYY, empty means "today"
	StartTime string
	RecordID  int64 // target work day for edit/delete
	Year      int   // month currently shown by a calendar view
	Month     int
	UpdatedAt time.Time
}
