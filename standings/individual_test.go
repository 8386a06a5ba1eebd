package standings

import (
	"testing"
	"time"

	"github.com/sdevrieze/urenloop/models"
)

var boardNow = time.Date(2025, 10, 14, 16, 0, 0, 0, time.UTC)

func runner(id int64, first, last string, kring int64, group int) *models.Runner {
	return &models.Runner{ID: id, FirstName: first, LastName: last, KringID: kring, GroupNumber: group}
}

func finishedLap(id int64, r *models.Runner, start time.Time, elapsed string) *models.Lap {
	return &models.Lap{ID: id, RunnerID: r.ID, StartTime: start, Time: elapsed, Runner: r}
}

func openLap(id int64, r *models.Runner, start time.Time) *models.Lap {
	return &models.Lap{ID: id, RunnerID: r.ID, StartTime: start, Time: models.PendingTime, Runner: r}
}

func TestIndividualRanksByBestTime(t *testing.T) {
	alice := runner(1, "Alice", "A", 1, 1)
	bob := runner(2, "Bob", "B", 2, 1)

	laps := []*models.Lap{
		finishedLap(1, alice, boardNow.Add(-time.Hour), "1:30.000"),
		finishedLap(2, alice, boardNow.Add(-30*time.Minute), "1:20.000"),
		finishedLap(3, bob, boardNow.Add(-20*time.Minute), "1:25.000"),
	}
	names := map[int64]string{1: "VTK", 2: "Apolloon"}

	b := Individual(boardNow, 0, laps, names)

	if len(b.TopRunners) != 2 {
		t.Fatalf("got %d top runners, want 2", len(b.TopRunners))
	}
	if b.TopRunners[0].Name != "Alice A" || b.TopRunners[0].Time != "1:20.000" {
		t.Fatalf("top runner = %+v, want Alice with best time", b.TopRunners[0])
	}
	if b.TopRunners[1].Name != "Bob B" {
		t.Fatalf("second = %+v, want Bob", b.TopRunners[1])
	}
	// previous runners keep the most recent time, not the best
	if b.PreviousRunners[0].Time != "1:20.000" || b.PreviousRunners[0].BestTime != "1:20.000" {
		t.Fatalf("previous = %+v", b.PreviousRunners[0])
	}
}

func TestIndividualTieBreaksByRunnerID(t *testing.T) {
	a := runner(7, "A", "", 1, 1)
	b := runner(3, "B", "", 1, 1)
	laps := []*models.Lap{
		finishedLap(1, a, boardNow, "1:10.000"),
		finishedLap(2, b, boardNow, "1:10.000"),
	}
	board := Individual(boardNow, 0, laps, nil)
	if board.TopRunners[0].ID != "3" || board.TopRunners[1].ID != "7" {
		t.Fatalf("tie break order = %s, %s", board.TopRunners[0].ID, board.TopRunners[1].ID)
	}
}

func TestIndividualFiltersByCompetition(t *testing.T) {
	a := runner(1, "A", "", 1, 1)
	laps := []*models.Lap{
		{ID: 1, RunnerID: 1, Competition: 1, StartTime: boardNow, Time: "1:00.000", Runner: a},
		{ID: 2, RunnerID: 1, Competition: 2, StartTime: boardNow, Time: "0:50.000", Runner: a},
	}
	b := Individual(boardNow, 1, laps, nil)
	if len(b.TopRunners) != 1 || b.TopRunners[0].Time != "1:00.000" {
		t.Fatalf("board = %+v, want only competition-1 lap", b.TopRunners)
	}
}

func TestIndividualActiveRunners(t *testing.T) {
	a := runner(1, "A", "", 1, 1)
	start := boardNow.Add(-90 * time.Second)
	laps := []*models.Lap{
		openLap(1, a, start),
		openLap(2, a, start.Add(time.Second)), // same runner listed once
	}
	b := Individual(boardNow, 0, laps, map[int64]string{1: "VTK"})

	if len(b.ActiveRunners) != 1 {
		t.Fatalf("got %d active runners, want 1", len(b.ActiveRunners))
	}
	ar := b.ActiveRunners[0]
	if ar.CurrentTime != start.UTC().Format(time.RFC3339Nano) {
		t.Fatalf("CurrentTime = %q, want start timestamp", ar.CurrentTime)
	}
	if ar.ImageURL != "/api/kringen/VTK/logo" {
		t.Fatalf("ImageURL = %q", ar.ImageURL)
	}
	if len(b.TopRunners) != 0 {
		t.Fatalf("open laps must not rank: %+v", b.TopRunners)
	}
}

func TestIndividualUnknownKring(t *testing.T) {
	a := runner(1, "A", "", 99, 1)
	b := Individual(boardNow, 0, []*models.Lap{finishedLap(1, a, boardNow, "1:00.000")}, map[int64]string{})
	if b.TopRunners[0].KringName != UnknownKring {
		t.Fatalf("KringName = %q, want %q", b.TopRunners[0].KringName, UnknownKring)
	}
}

func TestIndividualTopTenCap(t *testing.T) {
	var laps []*models.Lap
	for i := int64(1); i <= 12; i++ {
		r := runner(i, "R", "", 1, 1)
		laps = append(laps, finishedLap(i, r, boardNow, "1:10.000"))
	}
	b := Individual(boardNow, 0, laps, nil)
	if len(b.TopRunners) != 10 {
		t.Fatalf("top runners = %d, want 10", len(b.TopRunners))
	}
	if len(b.PreviousRunners) != 12 {
		t.Fatalf("previous runners = %d, want 12", len(b.PreviousRunners))
	}
}
