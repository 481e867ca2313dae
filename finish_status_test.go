package simresults

import (
	"testing"
)

func TestClassifyFinish(t *testing.T) {
	type finishTest struct {
		name     string
		evidence finishEvidence
		status   FinishStatus
		total    float64
	}

	tests := []finishTest{
		{
			name:     "no progress markers",
			evidence: finishEvidence{LapTimeSum: 120},
			status:   FinishDidNotFinish,
		},
		{
			name:     "progressing driver",
			evidence: finishEvidence{LapCounts: []int{1, 2, 3}, LastTotal: 300, LapTimeSum: 300},
			status:   FinishNormal,
			total:    300,
		},
		{
			name:     "two equal markers are not stuck",
			evidence: finishEvidence{LapCounts: []int{1, 2, 2}, LastTotal: 205.25, LapTimeSum: 205.25},
			status:   FinishNormal,
			total:    205.25,
		},
		{
			name:     "stuck driver",
			evidence: finishEvidence{LapCounts: []int{0, 1, 2, 3, 3, 3}, LastTotal: 433, LapTimeSum: 433},
			status:   FinishDidNotFinish,
		},
		{
			// the classification row repeats the last summary of a finisher
			name:     "finisher followed by its classification row",
			evidence: finishEvidence{LapCounts: []int{4, 5, 6, 6}, LastTotal: 674.296, LapTimeSum: 674.296},
			status:   FinishNormal,
			total:    674.296,
		},
		{
			// a result block printed twice counts as a third marker without progress
			name:     "finisher with a repeated classification block",
			evidence: finishEvidence{LapCounts: []int{4, 5, 6, 6, 6}, LastTotal: 674.296, LapTimeSum: 674.296},
			status:   FinishDidNotFinish,
		},
		{
			name:     "stuck only at the start",
			evidence: finishEvidence{LapCounts: []int{0, 0, 0, 1}, LastTotal: 95, LapTimeSum: 95},
			status:   FinishNormal,
			total:    95,
		},
		{
			name:     "zero total",
			evidence: finishEvidence{LapCounts: []int{0}, LapTimeSum: 0},
			status:   FinishDidNotFinish,
		},
		{
			name:     "total below lap sum",
			evidence: finishEvidence{LapCounts: []int{1, 2}, LastTotal: 200, LapTimeSum: 200.10000000000002},
			status:   FinishNormal,
			total:    200.1,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, total := classifyFinish(test.evidence)

			if status != test.status || total != test.total {
				t.Logf("wanted %s with %v, got %s with %v", test.status, test.total, status, total)
				t.Fail()
			}
		})
	}
}

func TestFinishStatus_String(t *testing.T) {
	for status, expected := range map[FinishStatus]string{
		FinishNormal:         "Finished",
		FinishDidNotFinish:   "DNF",
		FinishStatus("NONE"): "None",
	} {
		if status.String() != expected {
			t.Logf("wanted %q for %s, got %q", expected, string(status), status.String())
			t.Fail()
		}
	}
}

func TestParseSessionType(t *testing.T) {
	for marker, expected := range map[string]SessionType{
		"PRACTICE": SessionTypePractice,
		"QUALIFY":  SessionTypeQualify,
		"race":     SessionTypeRace,
		" WARMUP ": SessionTypeWarmup,
		"BOOK":     SessionTypeUnknown,
		"":         SessionTypeUnknown,
	} {
		if sessionType := parseSessionType(marker); sessionType != expected {
			t.Logf("wanted %s for %q, got %s", expected, marker, sessionType)
			t.Fail()
		}
	}
}
