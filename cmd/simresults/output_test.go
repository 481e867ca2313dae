package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JustaPenguin/simresults"
	"github.com/JustaPenguin/simresults/pkg/results"
)

func readTestLog(t *testing.T) *simresults.Reader {
	t.Helper()

	reader, err := simresults.NewReaderFromFile("../../testdata/output.txt")

	if err != nil {
		t.Fatalf("could not read log, err: %s", err)
	}

	return reader
}

func TestWriteSessions(t *testing.T) {
	reader := readTestLog(t)

	race, err := reader.Session(2)

	if err != nil {
		t.Fatal(err)
	}

	buf := new(bytes.Buffer)

	writeSessions(buf, []*simresults.Session{race}, true)

	out := buf.String()

	for _, expected := range []string{
		"Race: Carrera at doningtonpark",
		"(6 laps)",
		"1st",
		"Leonardo Ratafia",
		"Ratafia Racing",
		"11:14.296",
		"1:34.500",
		"DNF",
		"[Edu-Uruguay]: buenas noches",
		"3:12.480",
	} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(expected)) {
			t.Logf("expected output to contain %q", expected)
			t.Fail()
		}
	}
}

func TestSelectSessions(t *testing.T) {
	reader := readTestLog(t)

	type selectTest struct {
		index    int
		lastOnly bool
		sessions int
		name     string
	}

	for _, test := range []selectTest{
		{index: -1, sessions: 4, name: "Clasificacion"},
		{index: -1, lastOnly: true, sessions: 1, name: "Practica"},
		{index: 2, lastOnly: true, sessions: 1, name: "Carrera"},
	} {
		sessions, err := selectSessions(reader, test.index, test.lastOnly)

		if err != nil {
			t.Fatal(err)
		}

		if len(sessions) != test.sessions || sessions[0].Name() != test.name {
			t.Logf("index %d (last only: %t): got %d sessions starting with %q", test.index, test.lastOnly, len(sessions), sessions[0].Name())
			t.Fail()
		}
	}

	if _, err := selectSessions(reader, 9, false); err == nil {
		t.Log("expected an error for a session out of range")
		t.Fail()
	}
}

func TestSessionLimit(t *testing.T) {
	reader := readTestLog(t)

	for index, expected := range map[int]string{0: "15 minutes", 2: "6 laps", 3: "10 minutes"} {
		session, err := reader.Session(index)

		if err != nil {
			t.Fatal(err)
		}

		if limit := sessionLimit(session); limit != expected {
			t.Logf("session %d: wanted %q, got %q", index, expected, limit)
			t.Fail()
		}
	}
}

func TestReadLogs(t *testing.T) {
	logs, err := readLogs([]string{"../../testdata/output.txt", "../../testdata/output.txt"})

	if err != nil {
		t.Fatal(err)
	}

	if len(logs) != 2 || logs[1].location != "../../testdata/output.txt" || len(logs[1].reader.Sessions()) != 4 {
		t.Logf("unexpected logs %+v", logs)
		t.Fail()
	}

	if _, err := readLogs(nil); err == nil {
		t.Log("expected an error without files")
		t.Fail()
	}

	if _, err := readLogs([]string{"../../testdata/missing.txt"}); err == nil {
		t.Log("expected an error for a missing file")
		t.Fail()
	}
}

func TestArchiveSessions(t *testing.T) {
	store := results.NewJSONStore(t.TempDir())

	if err := archiveSessions(store, readTestLog(t).Sessions()); err != nil {
		t.Fatal(err)
	}

	list, err := store.ListResults()

	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 4 {
		t.Logf("expected 4 archived sessions, got %d", len(list))
		t.Fail()
	}
}
