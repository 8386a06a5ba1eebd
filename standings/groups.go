package standings

import (
	"sort"
	"strconv"
	"time"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

// groupColors assigns each group a stable dashboard color, cycling by
// group number.
var groupColors = []string{
	"#FF5733", // red-orange
	"#33A8FF", // blue
	"#33FF57", // green
	"#FF33F5", // magenta
	"#FFD700", // gold
	"#9933FF", // purple
	"#FF9933", // orange
	"#33FFC1", // turquoise
	"#FF3355", // red
	"#66FF33", // lime
}

func groupColor(groupNumber int) string {
	idx := (groupNumber - 1) % len(groupColors)
	if idx < 0 {
		idx += len(groupColors)
	}
	return groupColors[idx]
}

// GroupStanding is one row of the group leaderboard.
type GroupStanding struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AverageTime string `json:"averageTime"`
	Color       string `json:"color"`

	hasData bool
	average time.Duration
	number  int
}

// GroupRunner is an active or previous runner on the group dashboard.
type GroupRunner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GroupID     string `json:"groupId"`
	GroupName   string `json:"groupName"`
	Color       string `json:"color"`
	Time        string `json:"time,omitempty"`
	BestTime    string `json:"bestTime,omitempty"`
	CurrentTime string `json:"currentTime,omitempty"`
}

// GroupBoard is the group-competition dashboard snapshot.
type GroupBoard struct {
	CountdownTime   string          `json:"countdownTime"`
	Leaderboard     []GroupStanding `json:"leaderboard"`
	ActiveRunners   []GroupRunner   `json:"activeRunners"`
	PreviousRunners []GroupRunner   `json:"previousRunners"`
}

// Groups averages each runner's best finished lap per group and sorts
// ascending. Groups without a single finished lap sort last regardless of
// their zero average; the countdown runs to the configured finish time.
// Laps must carry their Runner relation.
func Groups(now time.Time, finishHour, finishMin int, groups []models.Group, laps []*models.Lap) GroupBoard {
	nameByNumber := map[int]string{}
	for _, g := range groups {
		nameByNumber[g.GroupNumber] = g.GroupName
	}

	// Best finished lap per runner, bucketed by group.
	bestByRunner := map[int64]time.Duration{}
	groupOfRunner := map[int64]int{}
	var active, finished []*models.Lap
	for _, l := range laps {
		if l.Runner == nil {
			continue
		}
		if !l.Finished() {
			active = append(active, l)
			continue
		}
		d := timefmt.ParseDuration(l.Time)
		if d == 0 {
			continue
		}
		finished = append(finished, l)
		if cur, ok := bestByRunner[l.RunnerID]; !ok || d < cur {
			bestByRunner[l.RunnerID] = d
			groupOfRunner[l.RunnerID] = l.Runner.GroupNumber
		}
	}

	sums := map[int]time.Duration{}
	counts := map[int]int{}
	for runnerID, best := range bestByRunner {
		g := groupOfRunner[runnerID]
		sums[g] += best
		counts[g]++
	}

	standings := make([]GroupStanding, 0, len(groups))
	for _, g := range groups {
		row := GroupStanding{
			ID:          strconv.Itoa(g.GroupNumber),
			Name:        g.GroupName,
			AverageTime: timefmt.FormatDuration(0),
			Color:       groupColor(g.GroupNumber),
			number:      g.GroupNumber,
		}
		if n := counts[g.GroupNumber]; n > 0 {
			row.hasData = true
			row.average = sums[g.GroupNumber] / time.Duration(n)
			row.AverageTime = timefmt.FormatDuration(row.average)
		}
		standings = append(standings, row)
	}
	sort.SliceStable(standings, func(i, j int) bool {
		// "No data" is a sentinel, never a fast average.
		if standings[i].hasData != standings[j].hasData {
			return standings[i].hasData
		}
		if standings[i].average != standings[j].average {
			return standings[i].average < standings[j].average
		}
		return standings[i].number < standings[j].number
	})

	board := GroupBoard{
		CountdownTime:   timefmt.FormatDurationHundredths(timefmt.CountdownTo(now, finishHour, finishMin)),
		Leaderboard:     standings,
		ActiveRunners:   []GroupRunner{},
		PreviousRunners: []GroupRunner{},
	}

	for _, l := range active {
		n := l.Runner.GroupNumber
		board.ActiveRunners = append(board.ActiveRunners, GroupRunner{
			ID:          strconv.FormatInt(l.Runner.ID, 10),
			Name:        runnerName(l.Runner),
			GroupID:     strconv.Itoa(n),
			GroupName:   groupDisplayName(nameByNumber, n),
			Color:       groupColor(n),
			CurrentTime: liveElapsed(now, l),
		})
	}

	sort.Slice(finished, func(i, j int) bool {
		return finished[i].StartTime.After(finished[j].StartTime)
	})
	for i, l := range finished {
		if i == 20 {
			break
		}
		n := l.Runner.GroupNumber
		board.PreviousRunners = append(board.PreviousRunners, GroupRunner{
			ID:        strconv.FormatInt(l.Runner.ID, 10),
			Name:      runnerName(l.Runner),
			GroupID:   strconv.Itoa(n),
			GroupName: groupDisplayName(nameByNumber, n),
			Color:     groupColor(n),
			Time:      l.Time,
			BestTime:  l.Time,
		})
	}

	return board
}

func groupDisplayName(names map[int]string, number int) string {
	if n, ok := names[number]; ok && n != "" {
		return n
	}
	return "Group " + strconv.Itoa(number)
}
