package results

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/JustaPenguin/simresults"
)

func readSessions(t *testing.T) []*simresults.Session {
	t.Helper()

	r, err := simresults.NewReaderFromFile("../../testdata/output.txt")

	if err != nil {
		t.Fatalf("could not read log, err: %s", err)
	}

	return r.Sessions()
}

var alternativeLapFormatLog = strings.Join([]string{
	"SESSION: Race",
	"TYPE=RACE",
	"TIME=0",
	"LAPS=2",
	"LAP Zimtpatrone 7:00:688",
	"Zimtpatrone :] BEST: 7:00:688 TOTAL: 7:00:688 Laps:1 SesID:3",
	"LAP GummiGeschoß 9:23:884",
	"GummiGeschoß :] BEST: 9:23:884 TOTAL: 9:23:884 Laps:1 SesID:2",
	"LAP GummiGeschoß 8:00:000",
	"GummiGeschoß :] BEST: 8:00:000 TOTAL: 17:23:884 Laps:2 SesID:2",
	"LAP Zimtpatrone 14:19:549",
	"Zimtpatrone :] BEST: 7:00:688 TOTAL: 21:20:237 Laps:2 SesID:3",
	"1) GummiGeschoß :] BEST: 8:00:000 TOTAL: 17:23:884 Laps:2 SesID:2",
	"2) Zimtpatrone :] BEST: 7:00:688 TOTAL: 21:20:237 Laps:2 SesID:3",
}, "\n")

func TestNewSessionResults(t *testing.T) {
	results := NewSessionResults(readSessions(t)[2])

	if results.Type != "RACE" || results.TrackName != "doningtonpark" || results.RaceLaps != 6 {
		t.Logf("unexpected session details %s / %s / %d", results.Type, results.TrackName, results.RaceLaps)
		t.Fail()
	}

	if len(results.Cars) != 6 || len(results.Result) != 6 {
		t.Fatalf("expected 6 cars and results, got %d and %d", len(results.Cars), len(results.Result))
	}

	winner := results.Result[0]

	if winner.DriverName != "Leonardo Ratafia" || winner.TotalTime != 674296 || winner.BestLap != 94500 || winner.GridPosition != 3 {
		t.Logf("unexpected winner %+v", winner)
		t.Fail()
	}

	if last := results.Result[5]; last.BestLap != noLapTime || last.NumLaps != 0 || last.FinishStatus != "DNF" {
		t.Logf("unexpected last result %+v", last)
		t.Fail()
	}

	t.Run("Laps in completion order", func(t *testing.T) {
		if len(results.Laps) != 26 {
			t.Fatalf("expected 26 laps, got %d", len(results.Laps))
		}

		first := results.Laps[0]

		if first.DriverName != "Edu-Uruguay" || first.LapNumber != 1 || first.LapTime != 100000 {
			t.Logf("unexpected first lap %+v", first)
			t.Fail()
		}

		for i := 1; i < len(results.Laps); i++ {
			if results.Laps[i].Timestamp < results.Laps[i-1].Timestamp {
				t.Logf("lap %d was completed before lap %d", i, i-1)
				t.Fail()
			}
		}

		if results.GetLaps(0) != 6 || results.GetLaps(4) != 3 {
			t.Logf("unexpected lap counts %d and %d", results.GetLaps(0), results.GetLaps(4))
			t.Fail()
		}
	})

	t.Run("Fastest lap", func(t *testing.T) {
		fastest := results.FastestLap()

		if fastest == nil || fastest.DriverName != "Leanlp Tava" || fastest.LapTime != 94000 {
			t.Logf("unexpected fastest lap %+v", fastest)
			t.Fail()
		}
	})

	t.Run("Teams", func(t *testing.T) {
		if !results.DriversHaveTeams() {
			t.Log("expected drivers to have teams")
			t.Fail()
		}
	})
}

func TestSessionResults_WriteJSON(t *testing.T) {
	r, err := simresults.NewReader([]byte(alternativeLapFormatLog))

	if err != nil {
		t.Fatal(err)
	}

	session, err := r.LastSession()

	if err != nil {
		t.Fatal(err)
	}

	results := NewSessionResults(session)

	if results.Result[0].DriverName != "GummiGeschoß" || results.Result[0].TotalTime != 1043884 {
		t.Logf("unexpected winner %+v", results.Result[0])
		t.Fail()
	}

	buf := new(bytes.Buffer)

	if err := results.WriteJSON(buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}

	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded["Type"] != "RACE" {
		t.Logf("unexpected type %v", decoded["Type"])
		t.Fail()
	}

	if laps, ok := decoded["Laps"].([]interface{}); !ok || len(laps) != 4 {
		t.Logf("expected 4 laps, got %v", decoded["Laps"])
		t.Fail()
	}
}
