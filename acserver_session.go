package simresults

import (
	"strconv"
	"strings"

	"github.com/JustaPenguin/simresults/pkg/laptime"
	"github.com/sirupsen/logrus"
)

// acRankEntry is a row of a ranked leaderboard block, a summary line prefixed with
// its rank such as "3) Leonardo Ratafia BEST: 1:34:500 TOTAL: 11:14:296 Laps:6 SesID:0".
type acRankEntry struct {
	rank        int
	participant *participantBuilder
}

// acFragmentParser reads the lines of one session fragment. Configuration and
// connection records update the carried server state; everything else is only
// collected when the fragment has a valid header.
type acFragmentParser struct {
	state  *acServerState
	header *acSessionHeader

	date    string
	ownDate bool
	cars    []string
	chats   []*Chat

	participants []*participantBuilder
	byName       map[string]*participantBuilder

	hasEvidence bool
	lapSeen     bool

	// lapCompletions counts the participants that completed each lap number so far
	lapCompletions map[int]int

	block          []acRankEntry
	grid           []acRankEntry
	classification []acRankEntry
}

func newACFragmentParser(state *acServerState, header *acSessionHeader) *acFragmentParser {
	p := &acFragmentParser{
		state:          state,
		header:         header,
		date:           state.date,
		byName:         make(map[string]*participantBuilder),
		lapCompletions: make(map[int]int),
	}

	if header != nil {
		// drivers still connected from earlier sessions take part without reconnecting
		for _, record := range state.rosterSnapshot() {
			p.participant(record.name).record.merge(record)
		}
	}

	return p
}

func (p *acFragmentParser) participant(name string) *participantBuilder {
	if b, ok := p.byName[name]; ok {
		return b
	}

	b := &participantBuilder{
		record: acDriverRecord{name: name},
	}

	p.byName[name] = b
	p.participants = append(p.participants, b)

	return b
}

func (p *acFragmentParser) scan(text string) {
	lines := strings.Split(text, "\n")

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	for i := 0; i < len(lines); i++ {
		if m := acSummaryRegex.FindStringSubmatch(lines[i]); m != nil && m[1] != "" {
			p.summary(m)
			continue
		}

		p.closeBlock()

		i += p.line(lines, i)
	}

	p.closeBlock()
}

// line handles lines[i] and returns how many of the following lines it consumed.
func (p *acFragmentParser) line(lines []string, i int) int {
	line := lines[i]

	if line == "" {
		return 0
	}

	if acDateRegex.MatchString(line) {
		p.state.date = line

		if !p.ownDate {
			p.date = line
			p.ownDate = true
		}

		return 0
	}

	if m := acTrackRegex.FindStringSubmatch(line); m != nil {
		p.state.venue = m[1]
		return 0
	}

	if m := acCourseRegex.FindStringSubmatch(line); m != nil {
		p.state.course = m[1]
		return 0
	}

	if acCarsRegex.MatchString(line) {
		var cars []string

		j := i + 1

		// the list ends at the first line that is not a car
		for ; j < len(lines) && acVehicleRegex.MatchString(lines[j]); j++ {
			cars = append(cars, lines[j])
		}

		p.cars = cars
		p.state.cars = cars

		return j - i - 1
	}

	if m := acRegisterRegex.FindStringSubmatch(line); m != nil {
		p.state.setServerName(m[1])
		return 0
	}

	if m := acBannerRegex.FindStringSubmatch(line); m != nil {
		p.state.setBanner(m[1])
		return 0
	}

	if acConnectRegex.MatchString(line) {
		record, consumed, ok := parseACConnect(lines[i+1:])

		if !ok {
			logrus.Debugf("simresults: skipping incomplete connection record %q", line)
			return 0
		}

		p.connect(record)

		return consumed
	}

	if m := acAltConnectRegex.FindStringSubmatch(line); m != nil {
		p.connect(acDriverRecord{
			name: m[2],
			team: m[3],
			car:  m[1],
		})

		return 0
	}

	if m := acDriverTeamRegex.FindStringSubmatch(line); m != nil {
		p.connect(acDriverRecord{
			name: m[1],
			team: m[2],
		})

		return 0
	}

	if m := acDisconnectRegex.FindStringSubmatch(line); m != nil {
		p.state.disconnect(m[1])
		return 0
	}

	if m := acLapRegex.FindStringSubmatch(line); m != nil {
		p.lap(m[1], m[2], m[3])
		return 0
	}

	if m := acChatRegex.FindStringSubmatch(line); m != nil {
		if p.header != nil {
			p.chats = append(p.chats, &Chat{message: m[1]})
		}

		return 0
	}

	if m := acSummaryRegex.FindStringSubmatch(line); m != nil {
		p.summary(m)
	}

	return 0
}

// parseACConnect reads the lines following a "NEW PICKUP CONNECTION" line:
//
//	VERSION 202
//	Leonardo Ratafia
//	76561198023156518
//	REQUESTED CAR: tatuusfa1*
//
// The GUID line is only written by some server versions.
func parseACConnect(lines []string) (acDriverRecord, int, bool) {
	if len(lines) < 3 || !acVersionRegex.MatchString(lines[0]) || lines[1] == "" {
		return acDriverRecord{}, 0, false
	}

	record := acDriverRecord{name: lines[1]}
	n := 2

	if acGUIDRegex.MatchString(lines[n]) {
		record.guid = lines[n]
		n++
	}

	if n >= len(lines) {
		return acDriverRecord{}, 0, false
	}

	car := acRequestedCarRegex.FindStringSubmatch(lines[n])

	if car == nil {
		return acDriverRecord{}, 0, false
	}

	record.car = car[1]

	return record, n + 1, true
}

func (p *acFragmentParser) connect(record acDriverRecord) {
	p.state.connect(record)

	if p.header == nil {
		return
	}

	p.hasEvidence = true
	p.participant(record.name).record.merge(record)
}

func (p *acFragmentParser) lap(name, lapTime, marker string) {
	if p.header == nil {
		return
	}

	p.hasEvidence = true
	p.lapSeen = true

	b := p.participant(name)

	if marker != "" {
		logrus.Debugf("simresults: excluding %s lap %s of %s", strings.ToLower(marker), lapTime, name)
		return
	}

	seconds, err := laptime.Parse(lapTime)

	if err != nil {
		logrus.Debugf("simresults: skipping lap of %s, err: %s", name, err)
		return
	}

	number := len(b.lapTimes) + 1

	var position int

	if number > 1 {
		position = p.lapCompletions[number] + 1
	}

	p.lapCompletions[number]++

	b.addLap(seconds, position)
}

func (p *acFragmentParser) summary(m []string) {
	if p.header == nil {
		return
	}

	name := m[2]

	total, err := laptime.Parse(m[4])

	if err != nil {
		logrus.Debugf("simresults: skipping summary of %s, err: %s", name, err)
		return
	}

	laps, err := strconv.Atoi(m[5])

	if err != nil {
		logrus.Debugf("simresults: skipping summary of %s, err: %s", name, err)
		return
	}

	p.hasEvidence = true

	b := p.participant(name)
	b.addProgress(laps, total)

	if m[1] == "" {
		return
	}

	if rank, err := strconv.Atoi(m[1]); err == nil && rank > 0 {
		p.block = append(p.block, acRankEntry{rank: rank, participant: b})
	}
}

// closeBlock ends the current ranked block. A block printed before the first lap
// is the starting grid, the last one printed after it is the classification.
func (p *acFragmentParser) closeBlock() {
	if len(p.block) == 0 {
		return
	}

	if p.lapSeen {
		p.classification = p.block
	} else if p.grid == nil {
		p.grid = p.block
	}

	p.block = nil
}

// session builds the session of the fragment, nil if the fragment had no data.
func (p *acFragmentParser) session() *Session {
	if p.header == nil || !p.hasEvidence {
		return nil
	}

	cars := p.cars

	if cars == nil {
		cars = p.state.cars
	}

	session := &Session{
		sessionType:     p.header.sessionType,
		name:            p.header.name,
		maxLaps:         p.header.maxLaps,
		maxMinutes:      p.header.maxMinutes,
		date:            p.date,
		allowedVehicles: buildVehicles(cars),
		chats:           p.chats,
		game:            p.state.game,
		server:          p.state.currentServer(),
		track:           p.state.currentTrack(),
	}

	if p.header.sessionType == SessionTypeRace {
		for _, entry := range p.grid {
			if entry.participant.grid == 0 {
				entry.participant.grid = entry.rank
			}
		}
	}

	session.participants = buildParticipants(p.participants, p.classification)

	for _, participant := range session.participants {
		if laps := participant.NumberOfLaps(); laps > session.lastedLaps {
			session.lastedLaps = laps
		}
	}

	return session
}

func buildVehicles(names []string) []*Vehicle {
	var vehicles []*Vehicle

	seen := make(map[string]bool)

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true
		vehicles = append(vehicles, &Vehicle{name: name})
	}

	return vehicles
}
