package simresults

import (
	"github.com/JustaPenguin/simresults/pkg/laptime"
)

// stuckOccurrences is the number of trailing progress markers with an unchanged
// lap count after which a driver is considered to have quit.
const stuckOccurrences = 3

// finishEvidence is what a log tells about whether a participant finished. There is
// no explicit finished or retired flag, only the progress markers (summary lines)
// the server prints for a driver.
type finishEvidence struct {
	// LapCounts are the lap counts of every progress marker of the participant, in log order.
	LapCounts []int

	// LastTotal is the cumulative time of the last progress marker, 0 if it had none.
	LastTotal float64

	// LapTimeSum is the sum of the participant's counted lap times.
	LapTimeSum float64
}

// stuck reports whether the last progress markers show no progress. A driver who
// quits without disconnecting keeps being reported with the same lap count and a
// stale cumulative time.
func (e finishEvidence) stuck() bool {
	if len(e.LapCounts) < stuckOccurrences {
		return false
	}

	last := e.LapCounts[len(e.LapCounts)-stuckOccurrences:]

	for _, laps := range last[1:] {
		if laps != last[0] {
			return false
		}
	}

	return true
}

// classifyFinish resolves the finish status and total time of a participant.
func classifyFinish(e finishEvidence) (FinishStatus, float64) {
	if e.stuck() || e.LastTotal <= 0 {
		return FinishDidNotFinish, 0
	}

	total := e.LastTotal

	// the total can never be lower than the laps it is made of
	if sum := laptime.Round(e.LapTimeSum); total < sum {
		total = sum
	}

	return FinishNormal, total
}
