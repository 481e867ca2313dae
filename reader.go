package simresults

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrCannotReadData  = errors.New("simresults: cannot read data")
	ErrSessionNotFound = errors.New("simresults: session index out of range")
)

// dialect is a server log format that can be turned into sessions.
type dialect interface {
	// Name of the dialect, for diagnostics.
	Name() string

	// CanRead reports whether text looks like a log of this dialect. It must not
	// attempt a full parse.
	CanRead(text string) bool

	// ReadSessions parses every session of text, in log order. Sessions without any
	// data are left out.
	ReadSessions(text string) []*Session
}

// dialects are tried in order, the first one that can read a log wins.
var dialects = []dialect{
	acServerDialect{},
}

// Reader holds the sessions read from a single log.
type Reader struct {
	dialect  dialect
	sessions []*Session
}

// NewReader detects the dialect of data and reads its sessions. ErrCannotReadData
// is returned if no dialect recognises data.
func NewReader(data []byte) (*Reader, error) {
	text, err := normalizeText(data)

	if err != nil {
		return nil, err
	}

	for _, d := range dialects {
		if !d.CanRead(text) {
			continue
		}

		sessions := d.ReadSessions(text)

		logrus.Debugf("simresults: read %d sessions as %s", len(sessions), d.Name())

		return &Reader{
			dialect:  d,
			sessions: sessions,
		}, nil
	}

	return nil, ErrCannotReadData
}

// NewReaderFromFile reads the log at location.
func NewReaderFromFile(location string) (*Reader, error) {
	data, err := ioutil.ReadFile(location)

	if err != nil {
		return nil, errors.Wrap(err, "simresults: could not open log")
	}

	r, err := NewReader(data)

	if err != nil {
		return nil, errors.Wrapf(err, "simresults: %s", location)
	}

	return r, nil
}

// Dialect is the name of the log format the reader detected.
func (r *Reader) Dialect() string {
	return r.dialect.Name()
}

// Sessions are all sessions of the log that had data, in log order.
func (r *Reader) Sessions() []*Session {
	return append([]*Session(nil), r.sessions...)
}

// Session returns the session at the zero-based index.
func (r *Reader) Session(index int) (*Session, error) {
	if index < 0 || index >= len(r.sessions) {
		return nil, errors.Wrapf(ErrSessionNotFound, "index %d (%d sessions)", index, len(r.sessions))
	}

	return r.sessions[index], nil
}

// LastSession returns the most recent session of the log.
func (r *Reader) LastSession() (*Session, error) {
	return r.Session(len(r.sessions) - 1)
}
