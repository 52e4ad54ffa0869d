package tui

import (
	"finaily/outcome"
	"finaily/types"
)

// Messages for the tea program. Loads and searches carry their own
// messages inside the loader and search packages.

// profileUpdatedMsg is sent when a PATCH /users/me completes
type profileUpdatedMsg struct {
	seq     int
	outcome outcome.Outcome[types.UserProfile]
}
