package simresults

import (
	"strings"

	"github.com/google/uuid"
)

type SessionType string

const (
	SessionTypePractice SessionType = "PRACTICE"
	SessionTypeQualify  SessionType = "QUALIFY"
	SessionTypeRace     SessionType = "RACE"
	SessionTypeWarmup   SessionType = "WARMUP"

	// SessionTypeUnknown is used for session type markers that are not understood.
	SessionTypeUnknown SessionType = "UNKNOWN"
)

func (s SessionType) String() string {
	switch s {
	case SessionTypePractice:
		return "Practice"
	case SessionTypeQualify:
		return "Qualifying"
	case SessionTypeRace:
		return "Race"
	case SessionTypeWarmup:
		return "Warmup"
	default:
		return strings.Title(strings.ToLower(string(s)))
	}
}

// parseSessionType maps a session type marker onto a SessionType. Unknown markers
// give SessionTypeUnknown.
func parseSessionType(marker string) SessionType {
	switch strings.ToUpper(strings.TrimSpace(marker)) {
	case "PRACTICE", "PRACTISE":
		return SessionTypePractice
	case "QUALIFY", "QUALIFYING":
		return SessionTypeQualify
	case "RACE":
		return SessionTypeRace
	case "WARMUP", "WARM-UP":
		return SessionTypeWarmup
	default:
		return SessionTypeUnknown
	}
}

// Session is one timed segment (practice, qualifying, race...) read from a log.
// Participants are ordered by classification, the first being the winner.
type Session struct {
	id              uuid.UUID
	sessionType     SessionType
	name            string
	maxLaps         int
	maxMinutes      int
	lastedLaps      int
	date            string
	allowedVehicles []*Vehicle
	participants    []*Participant
	chats           []*Chat

	game   *Game
	server *Server
	track  *Track
}

// ID identifies the session. It is derived from the log contents, so reading the
// same log twice gives the same ID.
func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Type() SessionType {
	return s.sessionType
}

func (s *Session) Name() string {
	return s.name
}

// MaxLaps is the lap limit of the session, 0 when it is not lap limited.
func (s *Session) MaxLaps() int {
	return s.maxLaps
}

// MaxMinutes is the time limit of the session, 0 when it is not time limited.
func (s *Session) MaxMinutes() int {
	return s.maxMinutes
}

// LastedLaps is the number of laps the session lasted, i.e. the laps completed by
// the participant who completed the most.
func (s *Session) LastedLaps() int {
	return s.lastedLaps
}

// DateString is the session date exactly as it was logged.
func (s *Session) DateString() string {
	return s.date
}

func (s *Session) AllowedVehicles() []*Vehicle {
	return append([]*Vehicle(nil), s.allowedVehicles...)
}

func (s *Session) Participants() []*Participant {
	return append([]*Participant(nil), s.participants...)
}

// ParticipantOf resolves the participant that completed lap.
func (s *Session) ParticipantOf(lap *Lap) *Participant {
	if lap == nil || lap.participantIndex < 0 || lap.participantIndex >= len(s.participants) {
		return nil
	}

	return s.participants[lap.participantIndex]
}

func (s *Session) Chats() []*Chat {
	return append([]*Chat(nil), s.chats...)
}

func (s *Session) Game() *Game {
	return s.game
}

func (s *Session) Server() *Server {
	return s.server
}

func (s *Session) Track() *Track {
	return s.track
}
