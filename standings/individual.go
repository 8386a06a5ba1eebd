package standings

import (
	"sort"
	"strconv"
	"time"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

// IndividualBoard is the individual-competition dashboard snapshot.
type IndividualBoard struct {
	CurrentTime     string        `json:"currentTime"`
	TopRunners      []BoardRunner `json:"topRunners"`
	ActiveRunners   []BoardRunner `json:"activeRunners"`
	PreviousRunners []BoardRunner `json:"previousRunners"`
}

type runnerStats struct {
	runner    *models.Runner
	best      time.Duration
	last      time.Duration
	lastStart time.Time
}

// Individual ranks runners by their best finished lap in the given
// competition. Laps must carry their Runner relation. Active laps (still
// pending) become the live-runner list with the start timestamp so the
// dashboard can interpolate elapsed time between polls.
func Individual(now time.Time, competition int, laps []*models.Lap, kringNames map[int64]string) IndividualBoard {
	byRunner := map[int64]*runnerStats{}
	var order []int64
	var active []*models.Lap

	for _, l := range laps {
		if l.Runner == nil || l.Competition != competition {
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
		st, ok := byRunner[l.Runner.ID]
		if !ok {
			st = &runnerStats{runner: l.Runner, best: d, last: d}
			byRunner[l.Runner.ID] = st
			order = append(order, l.Runner.ID)
			st.lastStart = l.StartTime
			continue
		}
		if d < st.best {
			st.best = d
		}
		if l.StartTime.After(st.lastStart) {
			st.last = d
			st.lastStart = l.StartTime
		}
	}

	finished := make([]*runnerStats, 0, len(order))
	for _, id := range order {
		finished = append(finished, byRunner[id])
	}
	sort.Slice(finished, func(i, j int) bool {
		if finished[i].best != finished[j].best {
			return finished[i].best < finished[j].best
		}
		return finished[i].runner.ID < finished[j].runner.ID
	})

	board := IndividualBoard{
		CurrentTime:     timefmt.FormatClock(now),
		TopRunners:      []BoardRunner{},
		ActiveRunners:   []BoardRunner{},
		PreviousRunners: []BoardRunner{},
	}

	for i, st := range finished {
		name := kringName(kringNames, st.runner.KringID)
		line := BoardRunner{
			ID:        strconv.FormatInt(st.runner.ID, 10),
			Name:      runnerName(st.runner),
			KringID:   strconv.FormatInt(st.runner.KringID, 10),
			KringName: name,
			ImageURL:  logoURL(name),
			Time:      timefmt.FormatDuration(st.last),
			BestTime:  timefmt.FormatDuration(st.best),
		}
		board.PreviousRunners = append(board.PreviousRunners, line)
		if i < 10 {
			top := line
			top.Time = top.BestTime
			board.TopRunners = append(board.TopRunners, top)
		}
	}

	seen := map[int64]bool{}
	for _, l := range active {
		if seen[l.Runner.ID] {
			continue
		}
		seen[l.Runner.ID] = true
		name := kringName(kringNames, l.Runner.KringID)
		board.ActiveRunners = append(board.ActiveRunners, BoardRunner{
			ID:          strconv.FormatInt(l.Runner.ID, 10),
			Name:        runnerName(l.Runner),
			KringID:     strconv.FormatInt(l.Runner.KringID, 10),
			KringName:   name,
			ImageURL:    logoURL(name),
			CurrentTime: l.StartTime.UTC().Format(time.RFC3339Nano),
		})
	}

	return board
}
