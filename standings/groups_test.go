package standings

import (
	"testing"
	"time"

	"github.com/sdevrieze/urenloop/models"
)

func TestGroupsAveragesBestLapPerRunner(t *testing.T) {
	g1 := models.Group{ID: 1, GroupNumber: 1, GroupName: "Alpha"}
	g2 := models.Group{ID: 2, GroupNumber: 2, GroupName: "Beta"}

	r1 := runner(1, "A", "", 1, 1)
	r2 := runner(2, "B", "", 1, 1)
	r3 := runner(3, "C", "", 1, 2)

	laps := []*models.Lap{
		// r1 best is 1:00, the slower 1:30 must not count
		finishedLap(1, r1, boardNow.Add(-time.Hour), "1:30.000"),
		finishedLap(2, r1, boardNow.Add(-50*time.Minute), "1:00.000"),
		finishedLap(3, r2, boardNow.Add(-40*time.Minute), "2:00.000"),
		finishedLap(4, r3, boardNow.Add(-30*time.Minute), "1:10.000"),
	}

	b := Groups(boardNow, 19, 0, []models.Group{g1, g2}, laps)

	if len(b.Leaderboard) != 2 {
		t.Fatalf("got %d rows, want 2", len(b.Leaderboard))
	}
	// group 2: 1:10 beats group 1: (1:00 + 2:00) / 2 = 1:30
	if b.Leaderboard[0].Name != "Beta" || b.Leaderboard[0].AverageTime != "1:10.000" {
		t.Fatalf("first = %+v", b.Leaderboard[0])
	}
	if b.Leaderboard[1].AverageTime != "1:30.000" {
		t.Fatalf("second average = %q, want 1:30.000", b.Leaderboard[1].AverageTime)
	}
}

func TestGroupsWithoutLapsSortLast(t *testing.T) {
	groups := []models.Group{
		{ID: 1, GroupNumber: 1, GroupName: "Empty"},
		{ID: 2, GroupNumber: 2, GroupName: "Busy"},
	}
	r := runner(1, "A", "", 1, 2)
	laps := []*models.Lap{finishedLap(1, r, boardNow, "3:00.000")}

	b := Groups(boardNow, 19, 0, groups, laps)
	if b.Leaderboard[0].Name != "Busy" {
		t.Fatalf("group with data must rank first, got %+v", b.Leaderboard)
	}
	if b.Leaderboard[1].AverageTime != "0:00.000" {
		t.Fatalf("empty group average = %q", b.Leaderboard[1].AverageTime)
	}
}

func TestGroupsCountdown(t *testing.T) {
	now := time.Date(2025, 10, 14, 18, 58, 30, 0, time.UTC)
	b := Groups(now, 19, 0, nil, nil)
	if b.CountdownTime != "1:30.00" {
		t.Fatalf("countdown = %q, want 1:30.00", b.CountdownTime)
	}
}

func TestGroupsActiveAndPrevious(t *testing.T) {
	g := models.Group{ID: 1, GroupNumber: 1, GroupName: "Alpha"}
	r := runner(1, "A", "B", 1, 1)

	var laps []*models.Lap
	for i := 0; i < 25; i++ {
		laps = append(laps, finishedLap(int64(i+1), r, boardNow.Add(time.Duration(i)*time.Minute), "1:00.000"))
	}
	laps = append(laps, openLap(99, r, boardNow.Add(-time.Minute)))

	b := Groups(boardNow, 19, 0, []models.Group{g}, laps)

	if len(b.PreviousRunners) != 20 {
		t.Fatalf("previous runners = %d, want cap of 20", len(b.PreviousRunners))
	}
	if len(b.ActiveRunners) != 1 {
		t.Fatalf("active runners = %d, want 1", len(b.ActiveRunners))
	}
	if b.ActiveRunners[0].CurrentTime != "1:00.000" {
		t.Fatalf("live elapsed = %q, want 1:00.000", b.ActiveRunners[0].CurrentTime)
	}
	if b.ActiveRunners[0].GroupName != "Alpha" {
		t.Fatalf("group name = %q", b.ActiveRunners[0].GroupName)
	}
}

func TestGroupColorCycles(t *testing.T) {
	if groupColor(1) != groupColor(11) {
		t.Fatal("colors must cycle every 10 groups")
	}
	if groupColor(1) == groupColor(2) {
		t.Fatal("adjacent groups must differ")
	}
}
