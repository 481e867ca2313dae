package simresults

import (
	"sort"

	"github.com/JustaPenguin/simresults/pkg/laptime"
)

// participantBuilder collects what a fragment tells about a participant. It is
// turned into an immutable Participant once the whole fragment has been read.
type participantBuilder struct {
	record acDriverRecord

	lapTimes     []float64
	lapPositions []int

	// progress markers (summary lines), in log order
	lapCounts []int
	lastTotal float64

	grid int

	status FinishStatus
	total  float64
}

func (b *participantBuilder) addLap(seconds float64, position int) {
	b.lapTimes = append(b.lapTimes, seconds)
	b.lapPositions = append(b.lapPositions, position)
}

func (b *participantBuilder) addProgress(laps int, total float64) {
	b.lapCounts = append(b.lapCounts, laps)
	b.lastTotal = total
}

func (b *participantBuilder) evidence() finishEvidence {
	var sum float64

	for _, t := range b.lapTimes {
		sum += t
	}

	return finishEvidence{
		LapCounts:  b.lapCounts,
		LastTotal:  b.lastTotal,
		LapTimeSum: sum,
	}
}

func (b *participantBuilder) build(index int) *Participant {
	participant := &Participant{
		drivers: []*Driver{
			{
				name:     b.record.name,
				driverID: b.record.guid,
				team:     b.record.team,
			},
		},
		team:         b.record.team,
		totalTime:    b.total,
		position:     index + 1,
		gridPosition: b.grid,
		finishStatus: b.status,
	}

	if b.record.car != "" {
		participant.vehicle = &Vehicle{name: b.record.car}
	}

	var elapsed float64

	for i, seconds := range b.lapTimes {
		participant.laps = append(participant.laps, &Lap{
			number:           i + 1,
			time:             seconds,
			elapsedSeconds:   laptime.Round(elapsed),
			position:         b.lapPositions[i],
			participantIndex: index,
			driverIndex:      0,
		})

		elapsed += seconds
	}

	return participant
}

// buildParticipants resolves the finish status of every participant and orders
// them. Participants of the classification come first, in its order. The others
// follow with more laps first, then finishers before non finishers, then the lower
// total time. Remaining ties keep the order participants were first seen in.
func buildParticipants(builders []*participantBuilder, classification []acRankEntry) []*Participant {
	ranks := make(map[*participantBuilder]int)

	for _, entry := range classification {
		if _, ok := ranks[entry.participant]; !ok {
			ranks[entry.participant] = entry.rank
		}
	}

	ordered := make([]*participantBuilder, len(builders))
	copy(ordered, builders)

	for _, b := range ordered {
		b.status, b.total = classifyFinish(b.evidence())
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		rankA, rankedA := ranks[a]
		rankB, rankedB := ranks[b]

		switch {
		case rankedA && rankedB:
			return rankA < rankB
		case rankedA != rankedB:
			return rankedA
		case len(a.lapTimes) != len(b.lapTimes):
			return len(a.lapTimes) > len(b.lapTimes)
		case a.status != b.status:
			return a.status == FinishNormal
		default:
			return a.total < b.total
		}
	})

	participants := make([]*Participant, len(ordered))

	for i, b := range ordered {
		participants[i] = b.build(i)
	}

	return participants
}
