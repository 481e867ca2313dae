package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	location := filepath.Join(t.TempDir(), "config.yml")

	if err := ioutil.WriteFile(location, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	return location
}

func TestReadConfig(t *testing.T) {
	t.Run("Full config", func(t *testing.T) {
		conf, err := ReadConfig(writeConfig(t, "log:\n  level: debug\n  format: json\noutput:\n  show_laps: true\nstore:\n  type: json\n  path: results\n"))

		if err != nil {
			t.Fatal(err)
		}

		if conf.Log.Level != "debug" || conf.Log.Format != "json" || !conf.Output.ShowLaps || conf.Output.LastSessionOnly ||
			conf.Store.Type != "json" || conf.Store.Path != "results" {
			t.Logf("unexpected config %+v", conf)
			t.Fail()
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		conf, err := ReadConfig(writeConfig(t, "output:\n  last_session_only: true\n"))

		if err != nil {
			t.Fatal(err)
		}

		if conf.Log.Level != "info" || conf.Log.Format != "text" || !conf.Output.LastSessionOnly || conf.Store.IsEnabled() {
			t.Logf("unexpected config %+v", conf)
			t.Fail()
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		if _, err := ReadConfig(filepath.Join(os.TempDir(), "simresults-missing", "config.yml")); err == nil {
			t.Log("expected an error for a missing config file")
			t.Fail()
		}
	})

	t.Run("Invalid yaml", func(t *testing.T) {
		if _, err := ReadConfig(writeConfig(t, "log: [")); err == nil {
			t.Log("expected an error for invalid yaml")
			t.Fail()
		}
	})
}

func TestLogConfig_Apply(t *testing.T) {
	logger := logrus.New()

	if err := (LogConfig{Level: "warn", Format: "json"}).Apply(logger); err != nil {
		t.Fatal(err)
	}

	if logger.GetLevel() != logrus.WarnLevel {
		t.Logf("expected warn level, got %s", logger.GetLevel())
		t.Fail()
	}

	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Logf("expected a json formatter, got %T", logger.Formatter)
		t.Fail()
	}

	for _, invalid := range []LogConfig{{Level: "loud", Format: "text"}, {Level: "info", Format: "xml"}} {
		if err := invalid.Apply(logrus.New()); err == nil {
			t.Logf("expected an error for %+v", invalid)
			t.Fail()
		}
	}
}

func TestStoreConfig_BuildStore(t *testing.T) {
	dir := t.TempDir()

	for _, storeType := range []string{"boltdb", "json"} {
		conf := StoreConfig{Type: storeType, Path: filepath.Join(dir, storeType)}

		store, err := conf.BuildStore()

		if err != nil {
			t.Fatalf("could not build %s store, err: %s", storeType, err)
		}

		if err := store.Close(); err != nil {
			t.Logf("could not close %s store, err: %s", storeType, err)
			t.Fail()
		}
	}

	for _, invalid := range []StoreConfig{{Type: "redis", Path: dir}, {Type: "json"}} {
		if _, err := invalid.BuildStore(); err == nil {
			t.Logf("expected an error for %+v", invalid)
			t.Fail()
		}
	}
}
