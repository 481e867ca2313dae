package simresults

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Assetto Corsa dedicated server log grammar. Every expression is matched against a
// single line with trailing whitespace removed; they are multi line so that the
// matcher can also use them on a whole log.
var (
	acBannerRegex   = regexp.MustCompile(`(?m)^Assetto Corsa Dedicated Server(?: v?(\S+))?`)
	acDateRegex     = regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)? [+-]\d{4} \S+$`)
	acTrackRegex    = regexp.MustCompile(`(?m)^TRACK=(\S+)$`)
	acCourseRegex   = regexp.MustCompile(`(?m)^CONFIG_TRACK=(\S*)$`)
	acCarsRegex     = regexp.MustCompile(`(?m)^CARS=$`)
	acVehicleRegex  = regexp.MustCompile(`(?m)^[a-z0-9][a-z0-9_.\-]*\*?$`)
	acRegisterRegex = regexp.MustCompile(`/register\?name=([^&\s]+)`)

	acSessionRegex     = regexp.MustCompile(`(?m)^SESSION: (.*)$`)
	acSessionTypeRegex = regexp.MustCompile(`(?m)^TYPE=(.*)$`)
	acSessionTimeRegex = regexp.MustCompile(`(?m)^TIME=(\d+)$`)
	acSessionLapsRegex = regexp.MustCompile(`(?m)^LAPS=(\d+)$`)

	acConnectRegex      = regexp.MustCompile(`(?m)^NEW PICKUP CONNECTION from\s+\S+$`)
	acVersionRegex      = regexp.MustCompile(`(?m)^VERSION \d+$`)
	acGUIDRegex         = regexp.MustCompile(`(?m)^\d{17}$`)
	acRequestedCarRegex = regexp.MustCompile(`(?m)^REQUESTED CAR: (\S+)$`)
	acAltConnectRegex   = regexp.MustCompile(`(?m)^Sending first leaderboard to car: (\S+) \(\d+\) \[(.*?) \[(.*)\]\]$`)
	acDriverTeamRegex   = regexp.MustCompile(`(?m)^DRIVER: (.+?) \[(.*)\]$`)
	acDisconnectRegex   = regexp.MustCompile(`(?m)^Clean exit, driver disconnected:\s+(.+?) \[.*\]$`)

	acLapRegex     = regexp.MustCompile(`(?m)^LAP (.+) (\d[\d:.]*)(?: \((DISCARDED|REFUSED)\))?$`)
	acSummaryRegex = regexp.MustCompile(`(?m)^(?:(\d+)\) )?(.+?)(?: :\])? BEST: (\S+) TOTAL: (\S+) Laps:(\d+) SesID:(\d+)$`)
	acChatRegex    = regexp.MustCompile(`(?m)^CHAT (.+)$`)
)

const (
	acServerGameName    = "Assetto Corsa"
	acServerUnknownName = "Unknown"
)

var sessionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/JustaPenguin/simresults/session"))

// acServerDialect reads the plain text log of the Assetto Corsa dedicated server
// (acServer), which may contain any number of concatenated sessions.
type acServerDialect struct{}

func (acServerDialect) Name() string {
	return "Assetto Corsa Server"
}

func (acServerDialect) CanRead(text string) bool {
	if acBannerRegex.MatchString(text) {
		return true
	}

	return acSessionRegex.MatchString(text) && (acLapRegex.MatchString(text) || acSummaryRegex.MatchString(text))
}

func (acServerDialect) ReadSessions(text string) []*Session {
	state := newACServerState()
	scanner := newFragmentScanner(text)

	// the preamble only holds server configuration and early connections
	newACFragmentParser(state, nil).scan(scanner.Preamble())

	var sessions []*Session

	for scanner.Scan() {
		fragment := scanner.Fragment()

		header, body, err := parseACSessionHeader(fragment.text)

		if err != nil {
			logrus.Warnf("simresults: skipping session at offset %d, err: %s", fragment.offset, err)
		}

		p := newACFragmentParser(state, header)
		p.scan(body)

		if header == nil {
			continue
		}

		session := p.session()

		if session == nil {
			logrus.Debugf("simresults: session %q at offset %d has no data", header.name, fragment.offset)
			continue
		}

		session.id = uuid.NewSHA1(sessionNamespace, []byte(fmt.Sprintf("%d\n%s", fragment.offset, fragment.text)))

		sessions = append(sessions, session)
	}

	return sessions
}

// acDriverRecord is what connection records tell about a driver.
type acDriverRecord struct {
	name string
	guid string
	team string
	car  string
}

// merge fills in what other knows and r does not. The car always follows other,
// drivers can switch cars between connections.
func (r *acDriverRecord) merge(other acDriverRecord) {
	if other.guid != "" {
		r.guid = other.guid
	}

	if other.team != "" {
		r.team = other.team
	}

	if other.car != "" {
		r.car = other.car
	}
}

// acServerState is carried from one fragment of a log to the next: the server
// prints its configuration once, and drivers stay connected across sessions.
type acServerState struct {
	date          string
	venue         string
	course        string
	cars          []string
	serverName    string
	serverVersion *semver.Version

	// roster of connected drivers, in connection order
	roster []*acDriverRecord

	game   *Game
	server *Server
	track  *Track
}

func newACServerState() *acServerState {
	return &acServerState{
		game: &Game{name: acServerGameName},
	}
}

func (s *acServerState) setServerName(encoded string) {
	name, err := url.QueryUnescape(encoded)

	if err != nil {
		logrus.Debugf("simresults: could not decode server name %q, err: %s", encoded, err)
		name = encoded
	}

	s.serverName = name
}

func (s *acServerState) setBanner(version string) {
	if version == "" {
		return
	}

	v, err := semver.NewVersion(version)

	if err != nil {
		logrus.Debugf("simresults: could not parse server version %q, err: %s", version, err)
		return
	}

	s.serverVersion = v
}

// currentServer returns the server as currently known. The same Server is
// returned until its details change.
func (s *acServerState) currentServer() *Server {
	name := s.serverName

	if name == "" {
		name = acServerUnknownName
	}

	if s.server == nil || s.server.name != name || s.server.version != s.serverVersion {
		s.server = &Server{
			name:      name,
			dedicated: true,
			version:   s.serverVersion,
		}
	}

	return s.server
}

func (s *acServerState) currentTrack() *Track {
	if s.track == nil || s.track.venue != s.venue || s.track.course != s.course {
		s.track = &Track{
			venue:  s.venue,
			course: s.course,
		}
	}

	return s.track
}

func (s *acServerState) connect(record acDriverRecord) {
	for _, driver := range s.roster {
		if driver.name == record.name {
			driver.merge(record)
			return
		}
	}

	s.roster = append(s.roster, &record)
}

func (s *acServerState) disconnect(name string) {
	for i, driver := range s.roster {
		if driver.name == name {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return
		}
	}
}

func (s *acServerState) rosterSnapshot() []acDriverRecord {
	out := make([]acDriverRecord, len(s.roster))

	for i, driver := range s.roster {
		out[i] = *driver
	}

	return out
}
