package standings

import (
	"testing"
	"time"

	"github.com/sdevrieze/urenloop/models"
)

var allowed = []models.Kring{
	{ID: 1, Name: "VTK"},
	{ID: 2, Name: "Apolloon"},
}

func TestKringenExcludesUnlistedKringen(t *testing.T) {
	member := runner(1, "A", "", 1, 1)
	outsider := runner(2, "B", "", 99, 1)

	laps := []*models.Lap{
		finishedLap(1, member, boardNow, "1:00.000"),
		finishedLap(2, outsider, boardNow, "0:50.000"),
	}

	b := Kringen(boardNow, allowed, laps)

	if b.TotalRuns != 1 {
		t.Fatalf("TotalRuns = %d, want 1", b.TotalRuns)
	}
	if len(b.Leaderboard) != 1 || b.Leaderboard[0].KringName != "VTK" {
		t.Fatalf("leaderboard = %+v, want only VTK", b.Leaderboard)
	}
}

func TestKringenAverage(t *testing.T) {
	r1 := runner(1, "A", "", 1, 1)
	r2 := runner(2, "B", "", 2, 1)

	laps := []*models.Lap{
		// average over all laps, not per-runner best
		finishedLap(1, r1, boardNow, "1:00.000"),
		finishedLap(2, r1, boardNow.Add(time.Minute), "2:00.000"),
		finishedLap(3, r2, boardNow, "1:10.000"),
	}

	b := Kringen(boardNow, allowed, laps)

	if len(b.ActiveKrings) != 2 {
		t.Fatalf("got %d kringen, want 2", len(b.ActiveKrings))
	}
	byName := map[string]KringStanding{}
	for _, k := range b.ActiveKrings {
		byName[k.Name] = k
	}
	if byName["VTK"].AverageTime != "1:30.00" {
		t.Fatalf("VTK average = %q, want 1:30.00", byName["VTK"].AverageTime)
	}
	if byName["Apolloon"].AverageTime != "1:10.00" {
		t.Fatalf("Apolloon average = %q, want 1:10.00", byName["Apolloon"].AverageTime)
	}
	if byName["VTK"].LogoURL != "/api/kringen/VTK/logo" {
		t.Fatalf("logo url = %q", byName["VTK"].LogoURL)
	}
}

func TestKringenFastestLapsCapAndTieBreak(t *testing.T) {
	r := runner(1, "A", "", 1, 1)
	var laps []*models.Lap
	for i := int64(1); i <= 7; i++ {
		laps = append(laps, finishedLap(i, r, boardNow.Add(time.Duration(i)*time.Minute), "1:00.000"))
	}

	b := Kringen(boardNow, allowed, laps)

	if len(b.Leaderboard) != 5 {
		t.Fatalf("leaderboard = %d rows, want 5", len(b.Leaderboard))
	}
	// equal times order by lap id
	if b.Leaderboard[0].LapID != "1" || b.Leaderboard[4].LapID != "5" {
		t.Fatalf("tie break order: %+v", b.Leaderboard)
	}
	if len(b.PreviousRunners) != 5 {
		t.Fatalf("previous runners = %d, want 5", len(b.PreviousRunners))
	}
	// most recent first
	if b.PreviousRunners[0].ID != "7" {
		t.Fatalf("newest previous = %s, want lap 7", b.PreviousRunners[0].ID)
	}
}

func TestKringenActiveRunnersGroupedByKring(t *testing.T) {
	r1 := runner(1, "A", "", 1, 1)
	r2 := runner(2, "B", "", 2, 1)
	start := boardNow.Add(-time.Minute)

	laps := []*models.Lap{
		openLap(1, r1, start),
		openLap(2, r2, start),
	}

	b := Kringen(boardNow, allowed, laps)

	if len(b.ActiveRunners["1"]) != 1 || len(b.ActiveRunners["2"]) != 1 {
		t.Fatalf("active runners = %+v", b.ActiveRunners)
	}
	if b.ActiveRunners["1"][0].CurrentTime != start.UTC().Format(time.RFC3339Nano) {
		t.Fatalf("CurrentTime = %q", b.ActiveRunners["1"][0].CurrentTime)
	}
}
