package game

import (
	"fmt"
	"time"
)

// RoundState is the phase the session is in.
type RoundState int

const (
	AwaitingHand RoundState = iota
	Playing
	GameOver
)

var roundStateNames = [...]string{"awaiting_hand", "playing", "game_over"}

func (s RoundState) String() string {
	if s < AwaitingHand || s > GameOver {
		return fmt.Sprintf("RoundState(%d)", int(s))
	}
	return roundStateNames[s]
}

// MarshalText renders the state by name so frames read well as JSON.
func (s RoundState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText.
func (s *RoundState) UnmarshalText(b []byte) error {
	for i, name := range roundStateNames {
		if name == string(b) {
			*s = RoundState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown round state %q", b)
}

const (
	TitleText        = "Finger Hunt"
	InstructionsText = "Show your hand to start"
	RestartLabel     = "Restart"
)

// Circle is a labelled circle for the host to draw.
type Circle struct {
	Label  string `json:"label,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Radius int    `json:"radius"`
}

// Frame describes what the host should draw after a tick. Which fields are
// set depends on State:
//
//   - AwaitingHand: Title and Instructions
//   - Playing: Remaining, Score, Target and, when the index fingertip is
//     tracked, Highlight
//   - GameOver: Score, Hotspot and Label
type Frame struct {
	State   RoundState  `json:"state"`
	Bounds  FieldBounds `json:"bounds"`
	RoundID string      `json:"round_id,omitempty"`
	Tick    uint64      `json:"tick"`
	At      time.Time   `json:"at"`

	Title        string `json:"title,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	Score     int     `json:"score"`
	Remaining int     `json:"remaining,omitempty"`
	Target    *Circle `json:"target,omitempty"`
	Highlight *Circle `json:"highlight,omitempty"`

	Hotspot *Circle `json:"hotspot,omitempty"`
	Label   string  `json:"label,omitempty"`

	// FPS is filled in by the host loop, not the engine.
	FPS float64 `json:"fps,omitempty"`
}
