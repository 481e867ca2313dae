package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/JustaPenguin/simresults"
	"github.com/JustaPenguin/simresults/pkg/results"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	configFile   string
	logPattern   string
	sessionIndex int
	showLaps     bool
	asJSON       bool
)

func init() {
	flag.StringVar(&configFile, "c", "config.yml", "configuration file, defaults are used when it does not exist")
	flag.StringVar(&logPattern, "f", "", "assetto corsa server log to read, may be a glob such as logs/**/*.txt")
	flag.IntVar(&sessionIndex, "s", -1, "zero-based index of the session to print, all sessions when negative")
	flag.BoolVar(&showLaps, "laps", false, "print the laps of every participant")
	flag.BoolVar(&asJSON, "json", false, "write sessions as assetto corsa results json instead of tables")
}

func main() {
	flag.Parse()

	config, err := ReadConfig(configFile)

	if os.IsNotExist(errors.Cause(err)) {
		config = DefaultConfiguration()
	} else if err != nil {
		logrus.Fatalf("could not open config file, err: %s", err)
	}

	if err := config.Log.Apply(logrus.StandardLogger()); err != nil {
		logrus.Fatalf("could not configure logging, err: %s", err)
	}

	if logPattern == "" {
		logrus.Fatal("no log file given, use -f")
	}

	files, err := zglob.Glob(logPattern)

	if err != nil {
		logrus.Fatalf("could not find logs matching %s, err: %s", logPattern, err)
	}

	logs, err := readLogs(files)

	if err != nil {
		logrus.Fatalf("could not read log, err: %s", err)
	}

	var store results.Store

	if config.Store.IsEnabled() {
		store, err = config.Store.BuildStore()

		if err != nil {
			logrus.Fatalf("could not open store, err: %s", err)
		}

		defer store.Close()
	}

	for _, log := range logs {
		logrus.Infof("read %d sessions from %s (%s)", len(log.reader.Sessions()), log.location, log.reader.Dialect())

		sessions, err := selectSessions(log.reader, sessionIndex, config.Output.LastSessionOnly)

		if err != nil {
			logrus.Errorf("could not select session of %s, err: %s", log.location, err)
			continue
		}

		if store != nil {
			if err := archiveSessions(store, sessions); err != nil {
				logrus.Errorf("could not archive sessions of %s, err: %s", log.location, err)
			}
		}

		if asJSON {
			for _, session := range sessions {
				if err := results.NewSessionResults(session).WriteJSON(os.Stdout); err != nil {
					logrus.Fatalf("could not write results, err: %s", err)
				}
			}

			continue
		}

		if len(logs) > 1 {
			fmt.Println(log.location)
		}

		writeSessions(os.Stdout, sessions, showLaps || config.Output.ShowLaps)
	}
}

type readLog struct {
	location string
	reader   *simresults.Reader
}

// readLogs reads every file concurrently, keeping the order of files.
func readLogs(files []string) ([]readLog, error) {
	if len(files) == 0 {
		return nil, errors.New("no log files found")
	}

	logs := make([]readLog, len(files))

	var g errgroup.Group

	for i, location := range files {
		i, location := i, location

		g.Go(func() error {
			reader, err := simresults.NewReaderFromFile(location)

			if err != nil {
				return err
			}

			logs[i] = readLog{location: location, reader: reader}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return logs, nil
}

func selectSessions(reader *simresults.Reader, index int, lastOnly bool) ([]*simresults.Session, error) {
	var (
		session *simresults.Session
		err     error
	)

	switch {
	case index >= 0:
		session, err = reader.Session(index)
	case lastOnly:
		session, err = reader.LastSession()
	default:
		return reader.Sessions(), nil
	}

	if err != nil {
		return nil, err
	}

	return []*simresults.Session{session}, nil
}

func archiveSessions(store results.Store, sessions []*simresults.Session) error {
	for _, session := range sessions {
		if err := store.UpsertResults(results.NewSessionResults(session)); err != nil {
			return err
		}

		logrus.Debugf("archived session %s (%s)", session.ID(), session.Name())
	}

	return nil
}
