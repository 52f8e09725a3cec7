package segment

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/kbukum/speechprep/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuild_MergesContiguousAndSplitsOnGap(t *testing.T) {
	rows := []TranscriptRow{
		{Timestamp: 0.0, Duration: 2.0, Text: "bonjour "},
		{Timestamp: 2.0, Duration: 2.0, Text: "à tous"},
		{Timestamp: 10.0, Duration: 1.0, Text: "merci"},
	}
	got := Build(rows, Config{MaxDuration: 10, CloseTolerance: 2.5e-4})
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d: %+v", len(got), got)
	}
	if got[0].Start != 0 || !approx(got[0].Duration, 4.0) || got[0].Text != "bonjour à tous" {
		t.Errorf("unexpected first segment %+v", got[0])
	}
	if got[1].Start != 10.0 || got[1].Duration != 1.0 || got[1].Text != "merci" {
		t.Errorf("unexpected second segment %+v", got[1])
	}
	if got[0].ID != 0 || got[1].ID != 1 {
		t.Errorf("expected ids 0 and 1, got %d and %d", got[0].ID, got[1].ID)
	}
}

func TestBuild_LongRowStaysOneSegment(t *testing.T) {
	got := Build([]TranscriptRow{{Timestamp: 5, Duration: 15, Text: "long"}}, Config{MaxDuration: 10})
	if len(got) != 1 || got[0].Duration != 15 {
		t.Fatalf("expected one 15s segment, got %+v", got)
	}
}

func TestBuild_SplitsAtMaxDuration(t *testing.T) {
	rows := []TranscriptRow{
		{Timestamp: 0, Duration: 4, Text: "a"},
		{Timestamp: 4, Duration: 4, Text: "b"},
		{Timestamp: 8, Duration: 4, Text: "c"},
	}
	got := Build(rows, Config{MaxDuration: 10})
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %+v", got)
	}
	if got[0].Text != "ab" || !approx(got[0].Duration, 8) {
		t.Errorf("unexpected first segment %+v", got[0])
	}
	if got[1].Text != "c" || got[1].Start != 8 {
		t.Errorf("unexpected second segment %+v", got[1])
	}
}

func TestBuild_ExactlyMaxDurationSplits(t *testing.T) {
	rows := []TranscriptRow{
		{Timestamp: 0, Duration: 5, Text: "a"},
		{Timestamp: 5, Duration: 5, Text: "b"},
	}
	if got := Build(rows, Config{MaxDuration: 10}); len(got) != 2 {
		t.Errorf("a merge reaching the limit must split, got %+v", got)
	}
}

func TestBuild_Tolerance(t *testing.T) {
	tests := []struct {
		name      string
		nextStart float64
		want      int
	}{
		{"within tolerance", 102.02, 1},
		{"outside tolerance", 102.05, 2},
		{"overlap outside tolerance", 101.9, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := []TranscriptRow{
				{Timestamp: 100, Duration: 2, Text: "x"},
				{Timestamp: tc.nextStart, Duration: 2, Text: "y"},
			}
			got := Build(rows, Config{MaxDuration: 10, CloseTolerance: 2.5e-4})
			if len(got) != tc.want {
				t.Fatalf("expected %d segments, got %+v", tc.want, got)
			}
			if tc.want == 1 && !approx(got[0].Duration, 2+2+(tc.nextStart-102)) {
				t.Errorf("gap should be added to the duration, got %v", got[0].Duration)
			}
		})
	}
}

func TestBuild_Defaults(t *testing.T) {
	rows := []TranscriptRow{
		{Timestamp: 0, Duration: 6, Text: "a"},
		{Timestamp: 6, Duration: 3, Text: "b"},
	}
	if got := Build(rows, Config{}); len(got) != 1 {
		t.Errorf("expected the default 10s limit to merge, got %+v", got)
	}
}

func TestBuild_Empty(t *testing.T) {
	if got := Build(nil, Config{}); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestBuild_CarriesPathsAndSequentialIDs(t *testing.T) {
	var rows []TranscriptRow
	for i := 0; i < 5; i++ {
		rows = append(rows, TranscriptRow{Timestamp: float64(i * 20), Duration: 1, Text: "t"})
	}
	got := Build(rows, Config{SourceAudio: "/data/talk.wav", OutputDir: "/data/talk"})
	if len(got) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(got))
	}
	for i, s := range got {
		if s.ID != i {
			t.Errorf("segment %d has id %d", i, s.ID)
		}
		if s.SourceAudio != "/data/talk.wav" || s.OutputDir != "/data/talk" {
			t.Errorf("paths not carried: %+v", s)
		}
	}
}

const transcriptXML = `<?xml version="1.0" encoding="UTF-8"?>
<transcript>
  <meta speaker="x"/>
  <row timestamp="0.0" timedur="2.5">Bonjour </row>
  <row timestamp="2.5" timedur="1.25">à tous.</row>
  <row timestamp=" 7 " timedur="1e0"></row>
</transcript>`

func TestParseTranscript(t *testing.T) {
	rows, err := ParseTranscript(strings.NewReader(transcriptXML), "talk.xml")
	if err != nil {
		t.Fatalf("ParseTranscript failed: %v", err)
	}
	want := []TranscriptRow{
		{Timestamp: 0, Duration: 2.5, Text: "Bonjour "},
		{Timestamp: 2.5, Duration: 1.25, Text: "à tous."},
		{Timestamp: 7, Duration: 1, Text: ""},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestParseTranscript_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "<transcript><row"},
		{"missing timestamp", `<t><row timedur="1">x</row></t>`},
		{"missing timedur", `<t><row timestamp="1">x</row></t>`},
		{"not a number", `<t><row timestamp="abc" timedur="1">x</row></t>`},
		{"infinite", `<t><row timestamp="inf" timedur="1">x</row></t>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTranscript(strings.NewReader(tc.doc), "bad.xml")
			appErr, ok := apperrors.AsAppError(err)
			if !ok || appErr.Code != apperrors.ErrCodeInvalidTranscript {
				t.Fatalf("expected INVALID_TRANSCRIPT, got %v", err)
			}
			if !appErr.Fatal() {
				t.Error("transcript errors must be fatal")
			}
		})
	}
}

func TestParseTranscript_RowIndexInError(t *testing.T) {
	doc := `<t><row timestamp="0" timedur="1">a</row><row timestamp="x" timedur="1">b</row></t>`
	_, err := ParseTranscript(strings.NewReader(doc), "bad.xml")
	appErr, _ := apperrors.AsAppError(err)
	if appErr == nil || appErr.Details["row"] != 1 {
		t.Fatalf("expected row 1 in details, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("error should mention the row, got %q", err.Error())
	}
}

func TestReadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.xml")
	if err := os.WriteFile(path, []byte(transcriptXML), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := ReadTranscript(path)
	if err != nil || len(rows) != 3 {
		t.Fatalf("ReadTranscript = %d rows, %v", len(rows), err)
	}
	if _, err := ReadTranscript(filepath.Join(t.TempDir(), "missing.xml")); !apperrors.HasCode(err, apperrors.ErrCodeInvalidTranscript) {
		t.Errorf("expected INVALID_TRANSCRIPT for missing file, got %v", err)
	}
}
