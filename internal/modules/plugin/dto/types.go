package dto

import "time"

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type CheckOutput struct {
	Name            string
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type NotifyInput struct {
	Event     string
	SessionID string
	Identity  string
	Note      string
	Minutes   int
	StartedAt time.Time
	EndedAt   time.Time
}

type NotifyOutput struct {
	Notified int
	Failures []string
}
