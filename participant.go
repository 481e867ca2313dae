package simresults

import (
	"strings"
)

type FinishStatus string

const (
	FinishNormal       FinishStatus = "NORMAL"
	FinishDidNotFinish FinishStatus = "DNF"
	FinishDidNotStart  FinishStatus = "DNS"
	FinishDisqualified FinishStatus = "DQ"
)

func (f FinishStatus) String() string {
	switch f {
	case FinishNormal:
		return "Finished"
	case FinishDidNotFinish:
		return "DNF"
	case FinishDidNotStart:
		return "DNS"
	case FinishDisqualified:
		return "DQ"
	default:
		return strings.Title(strings.ToLower(string(f)))
	}
}

// Participant is a single car entry of a Session.
type Participant struct {
	drivers      []*Driver
	vehicle      *Vehicle
	laps         []*Lap
	totalTime    float64
	position     int
	gridPosition int
	finishStatus FinishStatus
	team         string
}

// Drivers are the drivers of the participant in the order they drove.
func (p *Participant) Drivers() []*Driver {
	return append([]*Driver(nil), p.drivers...)
}

// Driver is the first driver of the participant.
func (p *Participant) Driver() *Driver {
	if len(p.drivers) == 0 {
		return nil
	}

	return p.drivers[0]
}

// DriverOf resolves the driver that drove lap.
func (p *Participant) DriverOf(lap *Lap) *Driver {
	if lap == nil || lap.driverIndex < 0 || lap.driverIndex >= len(p.drivers) {
		return nil
	}

	return p.drivers[lap.driverIndex]
}

// Vehicle is the car the participant drove last. It is nil when the log never
// named one.
func (p *Participant) Vehicle() *Vehicle {
	return p.vehicle
}

func (p *Participant) Laps() []*Lap {
	return append([]*Lap(nil), p.laps...)
}

// Lap returns lap number n, or nil if the participant has no such lap.
func (p *Participant) Lap(n int) *Lap {
	if n < 1 || n > len(p.laps) {
		return nil
	}

	return p.laps[n-1]
}

func (p *Participant) NumberOfLaps() int {
	return len(p.laps)
}

// BestLap is the fastest lap of the participant, nil without laps.
func (p *Participant) BestLap() *Lap {
	var best *Lap

	for _, lap := range p.laps {
		if best == nil || lap.time < best.time {
			best = lap
		}
	}

	return best
}

// TotalTime is the race time in seconds. It is 0 when the participant did not finish.
func (p *Participant) TotalTime() float64 {
	return p.totalTime
}

// Position is the 1-based classified position.
func (p *Participant) Position() int {
	return p.position
}

// GridPosition is the starting position, only known for races.
func (p *Participant) GridPosition() (int, bool) {
	return p.gridPosition, p.gridPosition > 0
}

func (p *Participant) FinishStatus() FinishStatus {
	return p.finishStatus
}

func (p *Participant) Team() string {
	return p.team
}
