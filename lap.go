package simresults

// Lap is a completed, counted lap of a Participant. Laps refer back to their
// Participant and Driver by index; use Session.ParticipantOf and
// Participant.DriverOf to resolve them.
type Lap struct {
	number         int
	time           float64
	elapsedSeconds float64
	position       int

	participantIndex int
	driverIndex      int
}

// Number is the 1-based lap number.
func (l *Lap) Number() int {
	return l.number
}

// Time is the lap time in seconds.
func (l *Lap) Time() float64 {
	return l.time
}

// ElapsedSeconds is the time the lap started at, relative to the start of the
// participant's first lap.
func (l *Lap) ElapsedSeconds() float64 {
	return l.elapsedSeconds
}

// Position is the position of the participant when the lap was completed. There
// is no position for the first lap.
func (l *Lap) Position() (int, bool) {
	return l.position, l.position > 0
}

func (l *Lap) ParticipantIndex() int {
	return l.participantIndex
}

func (l *Lap) DriverIndex() int {
	return l.driverIndex
}
