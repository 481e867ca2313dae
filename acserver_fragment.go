package simresults

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// fragment is the part of a log belonging to a single session, starting at its
// session header.
type fragment struct {
	offset int
	text   string
}

// fragmentScanner splits a log into session fragments. Like bufio.Scanner it is
// consumed once: call Scan until it returns false, reading each Fragment.
type fragmentScanner struct {
	text     string
	next     int
	preamble string
	current  fragment
}

func newFragmentScanner(text string) *fragmentScanner {
	s := &fragmentScanner{
		text:     text,
		next:     -1,
		preamble: text,
	}

	if loc := acSessionRegex.FindStringIndex(text); loc != nil {
		s.next = loc[0]
		s.preamble = text[:loc[0]]
	}

	return s
}

// Preamble is the text before the first session header.
func (s *fragmentScanner) Preamble() string {
	return s.preamble
}

func (s *fragmentScanner) Scan() bool {
	if s.next < 0 {
		return false
	}

	start, end := s.next, len(s.text)
	s.next = -1

	// the search starts inside the current header line, so it finds the next one
	if loc := acSessionRegex.FindStringIndex(s.text[start+1:]); loc != nil {
		end = start + 1 + loc[0]
		s.next = end
	}

	s.current = fragment{
		offset: start,
		text:   s.text[start:end],
	}

	return true
}

func (s *fragmentScanner) Fragment() fragment {
	return s.current
}

type acSessionHeader struct {
	sessionType SessionType
	name        string
	maxMinutes  int
	maxLaps     int
}

var errMalformedHeader = errors.New("simresults: malformed session header")

// parseACSessionHeader reads the header lines at the start of a fragment:
//
//	SESSION: Carrera
//	TYPE=RACE
//	TIME=0
//	LAPS=6
//
// and returns the rest of the fragment as body. If the header is malformed the
// whole fragment is returned as body with an error.
func parseACSessionHeader(text string) (*acSessionHeader, string, error) {
	lines := strings.SplitN(text, "\n", 5)

	if len(lines) < 4 {
		return nil, text, errors.Wrapf(errMalformedHeader, "expected 4 lines, got %d", len(lines))
	}

	for i := range lines[:4] {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}

	name := acSessionRegex.FindStringSubmatch(lines[0])
	sessionType := acSessionTypeRegex.FindStringSubmatch(lines[1])
	minutes := acSessionTimeRegex.FindStringSubmatch(lines[2])
	laps := acSessionLapsRegex.FindStringSubmatch(lines[3])

	if name == nil || sessionType == nil || minutes == nil || laps == nil {
		return nil, text, errors.Wrapf(errMalformedHeader, "%q", strings.Join(lines[:4], "|"))
	}

	header := &acSessionHeader{
		sessionType: parseSessionType(sessionType[1]),
		name:        strings.TrimSpace(name[1]),
	}

	var err error

	if header.maxMinutes, err = strconv.Atoi(minutes[1]); err != nil {
		return nil, text, errors.Wrap(errMalformedHeader, err.Error())
	}

	if header.maxLaps, err = strconv.Atoi(laps[1]); err != nil {
		return nil, text, errors.Wrap(errMalformedHeader, err.Error())
	}

	if header.sessionType == SessionTypeUnknown {
		logrus.Debugf("simresults: unknown session type %q for session %q", sessionType[1], header.name)
	}

	var body string

	if len(lines) == 5 {
		body = lines[4]
	}

	return header, body, nil
}
