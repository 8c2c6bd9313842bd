package dto

import "time"

const (
	StateIdle      = "idle"
	StateRunning   = "running"
	StateCompleted = "completed"
)

type StartInput struct {
	Minutes int
	Note    string
	Force   bool
}

type StartOutput struct {
	SessionID string
	Identity  string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndsAt    time.Time
	LogPath   string
	Warnings  []string
}

type StatusOutput struct {
	State        string
	SessionID    string
	Identity     string
	Note         string
	Minutes      int
	StartedAt    time.Time
	EndsAt       time.Time
	ElapsedSec   int
	RemainingSec int
	OverSec      int
	JustLogged   bool
	Warnings     []string
}

type StopOutput struct {
	SessionID string
	Identity  string
	Outcome   string
	EndedAt   time.Time
	Warnings  []string
}
