package results

import (
	"encoding/json"
	"io"
	"math"
	"sort"

	"github.com/JustaPenguin/simresults"

	"github.com/google/uuid"
)

// noLapTime is written for best laps of drivers without a lap, as the
// Assetto Corsa server does in its results files.
const noLapTime = 999999999

// SessionResults is a Session in the layout of the results files the Assetto Corsa
// server writes, so that sessions recovered from a log can be used by tools reading
// those files. Times are in milliseconds.
type SessionResults struct {
	SessionID   uuid.UUID        `json:"SessionID"`
	ServerName  string           `json:"ServerName"`
	Cars        []*SessionCar    `json:"Cars"`
	Laps        []*SessionLap    `json:"Laps"`
	Result      []*SessionResult `json:"Result"`
	TrackConfig string           `json:"TrackConfig"`
	TrackName   string           `json:"TrackName"`
	Type        string           `json:"Type"`
	Date        string           `json:"Date"`
	RaceLaps    int              `json:"RaceLaps"`
	DurationMin int              `json:"DurationMin"`
}

// NewSessionResults converts session. Cars are numbered by classified position,
// laps are ordered by the time they were completed.
func NewSessionResults(session *simresults.Session) *SessionResults {
	results := &SessionResults{
		SessionID:   session.ID(),
		ServerName:  session.Server().Name(),
		TrackConfig: session.Track().Course(),
		TrackName:   session.Track().Venue(),
		Type:        string(session.Type()),
		Date:        session.DateString(),
		RaceLaps:    session.MaxLaps(),
		DurationMin: session.MaxMinutes(),
	}

	type completedLap struct {
		lap *SessionLap
		at  float64
	}

	var laps []completedLap

	for carID, participant := range session.Participants() {
		driver := participant.Driver()

		var model string

		if participant.Vehicle() != nil {
			model = participant.Vehicle().Name()
		}

		results.Cars = append(results.Cars, &SessionCar{
			CarID: carID,
			Driver: SessionDriver{
				GUID: driver.DriverID(),
				Name: driver.Name(),
				Team: participant.Team(),
			},
			Model: model,
		})

		result := &SessionResult{
			BestLap:      noLapTime,
			CarID:        carID,
			CarModel:     model,
			DriverGUID:   driver.DriverID(),
			DriverName:   driver.Name(),
			TotalTime:    milliseconds(participant.TotalTime()),
			NumLaps:      participant.NumberOfLaps(),
			FinishStatus: string(participant.FinishStatus()),
		}

		if grid, ok := participant.GridPosition(); ok {
			result.GridPosition = grid
		}

		if best := participant.BestLap(); best != nil {
			result.BestLap = milliseconds(best.Time())
		}

		results.Result = append(results.Result, result)

		for _, lap := range participant.Laps() {
			position, _ := lap.Position()
			completed := lap.ElapsedSeconds() + lap.Time()

			laps = append(laps, completedLap{
				at: completed,
				lap: &SessionLap{
					CarID:      carID,
					CarModel:   model,
					DriverGUID: participant.DriverOf(lap).DriverID(),
					DriverName: participant.DriverOf(lap).Name(),
					LapNumber:  lap.Number(),
					LapTime:    milliseconds(lap.Time()),
					Timestamp:  milliseconds(completed),
					Position:   position,
				},
			})
		}
	}

	sort.SliceStable(laps, func(i, j int) bool {
		return laps[i].at < laps[j].at
	})

	for _, completed := range laps {
		results.Laps = append(results.Laps, completed.lap)
	}

	return results
}

func milliseconds(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

// DriversHaveTeams reports whether any driver with a total time drove for a team.
func (s *SessionResults) DriversHaveTeams() bool {
	teams := make(map[int]string)

	for _, car := range s.Cars {
		teams[car.CarID] = car.Driver.Team
	}

	for _, result := range s.Result {
		if result.TotalTime > 0 {
			if team, ok := teams[result.CarID]; ok && team != "" {
				return true
			}
		}
	}

	return false
}

// FastestLap is the fastest lap of the session, the earliest one on a tie.
func (s *SessionResults) FastestLap() *SessionLap {
	var fastest *SessionLap

	for _, lap := range s.Laps {
		if fastest == nil || lap.LapTime < fastest.LapTime {
			fastest = lap
		}
	}

	return fastest
}

// GetLaps is the number of laps driven in car.
func (s *SessionResults) GetLaps(carID int) int {
	var i int

	for _, lap := range s.Laps {
		if lap.CarID == carID {
			i++
		}
	}

	return i
}

// WriteJSON writes the results indented with tabs, like the server's own files.
func (s *SessionResults) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")

	return encoder.Encode(s)
}

type SessionResult struct {
	BestLap      int    `json:"BestLap"`
	CarID        int    `json:"CarId"`
	CarModel     string `json:"CarModel"`
	DriverGUID   string `json:"DriverGuid"`
	DriverName   string `json:"DriverName"`
	TotalTime    int    `json:"TotalTime"`
	NumLaps      int    `json:"NumLaps"`
	GridPosition int    `json:"GridPosition"`
	FinishStatus string `json:"FinishStatus"`
}

type SessionLap struct {
	CarID      int    `json:"CarId"`
	CarModel   string `json:"CarModel"`
	DriverGUID string `json:"DriverGuid"`
	DriverName string `json:"DriverName"`
	LapNumber  int    `json:"LapNumber"`
	LapTime    int    `json:"LapTime"`
	Timestamp  int    `json:"Timestamp"`
	Position   int    `json:"Position"`
}

type SessionCar struct {
	CarID  int           `json:"CarId"`
	Driver SessionDriver `json:"Driver"`
	Model  string        `json:"Model"`
}

type SessionDriver struct {
	GUID string `json:"Guid"`
	Name string `json:"Name"`
	Team string `json:"Team"`
}
