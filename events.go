// events.go
package main

// GameEventKind labels a side effect produced by a simulation tick.
// The tick itself only mutates game state; the frame driver dispatches
// the returned events to the audio and UI collaborators afterward,
// which keeps the simulation testable without either.
type GameEventKind int

const (
	EventSessionStarted GameEventKind = iota
	EventFootstep
	EventDamageTaken
	EventHeartbeat
	EventPillCollected
	EventFloatingText
	EventAmbientVolume
	EventVictory
	EventTimeExpired
	EventPlayerDied
)

type GameEvent struct {
	Kind GameEventKind

	// Text carries the caption for EventFloatingText.
	Text string
	// Pill identifies the pill for EventPillCollected.
	Pill PillKind
	// Volume carries the ambient level for EventAmbientVolume.
	Volume float64
}

func floatingTextEvent(text string) GameEvent {
	return GameEvent{Kind: EventFloatingText, Text: text}
}
