package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/JustaPenguin/simresults"
	"github.com/JustaPenguin/simresults/pkg/laptime"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/jedib0t/go-pretty/v6/table"
)

const noValue = "-"

func writeSessions(w io.Writer, sessions []*simresults.Session, showLaps bool) {
	for _, session := range sessions {
		writeSession(w, session)

		if showLaps {
			for _, participant := range session.Participants() {
				writeLaps(w, participant)
			}
		}

		fmt.Fprintln(w)
	}
}

func writeSession(w io.Writer, session *simresults.Session) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("%s: %s at %s, %s (%s)", session.Type(), session.Name(), session.Track().Name(), session.Server().Name(), sessionLimit(session))
	t.AppendHeader(table.Row{"Pos", "Driver", "Team", "Car", "Grid", "Laps", "Best", "Total", "Status"})

	for _, participant := range session.Participants() {
		car := noValue

		if participant.Vehicle() != nil {
			car = participant.Vehicle().Name()
		}

		grid := noValue

		if position, ok := participant.GridPosition(); ok {
			grid = strconv.Itoa(position)
		}

		best := noValue

		if lap := participant.BestLap(); lap != nil {
			best = laptime.Format(lap.Time())
		}

		total := noValue

		if participant.FinishStatus() == simresults.FinishNormal {
			total = laptime.Format(participant.TotalTime())
		}

		t.AppendRow(table.Row{
			humanize.Ordinal(participant.Position()),
			participant.Driver().Name(),
			participant.Team(),
			car,
			grid,
			participant.NumberOfLaps(),
			best,
			total,
			participant.FinishStatus().String(),
		})
	}

	t.AppendFooter(table.Row{"", session.DateString(), "", "", "", session.LastedLaps()})
	t.Render()

	for _, chat := range session.Chats() {
		fmt.Fprintln(w, chat.Message())
	}
}

// sessionLimit describes the lap or time limit of session.
func sessionLimit(session *simresults.Session) string {
	switch {
	case session.MaxLaps() == 1:
		return "1 lap"
	case session.MaxLaps() > 0:
		return fmt.Sprintf("%d laps", session.MaxLaps())
	case session.MaxMinutes() > 0:
		return durafmt.Parse(time.Duration(session.MaxMinutes()) * time.Minute).String()
	default:
		return "no limit"
	}
}

func writeLaps(w io.Writer, participant *simresults.Participant) {
	if participant.NumberOfLaps() == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("%s", participant.Driver().Name())
	t.AppendHeader(table.Row{"Lap", "Time", "Elapsed", "Pos"})

	for _, lap := range participant.Laps() {
		position := noValue

		if p, ok := lap.Position(); ok {
			position = strconv.Itoa(p)
		}

		t.AppendRow(table.Row{lap.Number(), laptime.Format(lap.Time()), laptime.Format(lap.ElapsedSeconds()), position})
	}

	t.Render()
}
