package main

import (
	"os"
	"strings"

	"github.com/JustaPenguin/simresults/pkg/results"

	"github.com/etcd-io/bbolt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Configuration of the simresults command, read from config.yml.
type Configuration struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
	Store  StoreConfig  `yaml:"store"`
}

type LogConfig struct {
	// Level is a logrus level name, e.g. "debug" or "warn".
	Level string `yaml:"level"`

	// Format is either "text" or "json".
	Format string `yaml:"format"`
}

const (
	logFormatText = "text"
	logFormatJSON = "json"
)

type OutputConfig struct {
	ShowLaps bool `yaml:"show_laps"`

	// LastSessionOnly prints only the most recent session of a log.
	LastSessionOnly bool `yaml:"last_session_only"`
}

// StoreConfig selects where read sessions are archived. Nothing is archived when
// Type is empty.
type StoreConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

const (
	storeTypeBolt = "boltdb"
	storeTypeJSON = "json"
)

func (s *StoreConfig) IsEnabled() bool {
	return s.Type != ""
}

func (s *StoreConfig) BuildStore() (results.Store, error) {
	if s.Path == "" {
		return nil, errors.New("store path must be set")
	}

	switch s.Type {
	case storeTypeBolt:
		db, err := bbolt.Open(s.Path, 0644, nil)

		if err != nil {
			return nil, errors.Wrapf(err, "could not open store %s", s.Path)
		}

		return results.NewBoltStore(db), nil
	case storeTypeJSON:
		return results.NewJSONStore(s.Path), nil
	default:
		return nil, errors.Errorf("invalid store type (%s), must be either boltdb/json", s.Type)
	}
}

// DefaultConfiguration is used for anything a config file leaves out.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Log: LogConfig{
			Level:  logrus.InfoLevel.String(),
			Format: logFormatText,
		},
	}
}

func ReadConfig(location string) (*Configuration, error) {
	f, err := os.Open(location)

	if err != nil {
		return nil, errors.Wrap(err, "could not open config")
	}

	defer f.Close()

	conf := DefaultConfiguration()

	if err := yaml.NewDecoder(f).Decode(conf); err != nil {
		return nil, errors.Wrapf(err, "could not decode config %s", location)
	}

	if conf.Log.Level == "" {
		conf.Log.Level = logrus.InfoLevel.String()
	}

	if conf.Log.Format == "" {
		conf.Log.Format = logFormatText
	}

	return conf, nil
}

// Apply configures logger with the level and format of l.
func (l LogConfig) Apply(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(l.Level)

	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	switch strings.ToLower(l.Format) {
	case logFormatText, "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case logFormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format %q, must be either text/json", l.Format)
	}

	logger.SetLevel(level)

	return nil
}
