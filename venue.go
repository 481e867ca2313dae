package simresults

import (
	"github.com/Masterminds/semver"
)

// Game identifies the simulator a log was written by.
type Game struct {
	name string
}

func (g *Game) Name() string {
	return g.name
}

// Server is the game server that hosted a session. Sessions read from the same
// log share a Server.
type Server struct {
	name      string
	dedicated bool
	version   *semver.Version
}

func (s *Server) Name() string {
	return s.name
}

func (s *Server) IsDedicated() bool {
	return s.dedicated
}

// Version is the server software version from the log banner. It is nil when the
// banner is missing or carries no version.
func (s *Server) Version() *semver.Version {
	return s.version
}

// Track is the venue a session took place at. Course is the layout of the venue
// and is empty for venues with a single layout.
type Track struct {
	venue  string
	course string
}

func (t *Track) Venue() string {
	return t.venue
}

func (t *Track) Course() string {
	return t.course
}

func (t *Track) Name() string {
	if t.course == "" {
		return t.venue
	}

	return t.venue + " (" + t.course + ")"
}
