package dto

import "time"

type RecordInput struct {
	SessionID string
	Identity  string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
}

type EntryOutput struct {
	SessionID string
	Identity  string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
	Outcome   string
}

type StatsOutput struct {
	Total          int
	Completed      int
	Cancelled      int
	Pending        int
	FocusedMinutes int
}

type ReindexOutput struct {
	Indexed int
	Skipped int
}
