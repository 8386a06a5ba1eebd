package standings

import (
	"sort"
	"strconv"
	"time"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

// KringStanding is one society row on the inter-society dashboard.
type KringStanding struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logoUrl"`
	AverageTime string `json:"averageTime"`
}

// FastestLap is a row of the cross-society fastest-laps leaderboard.
type FastestLap struct {
	LapID      string `json:"lapId"`
	RunnerID   string `json:"runnerId"`
	RunnerName string `json:"runnerName"`
	KringID    string `json:"kringId"`
	KringName  string `json:"kringName"`
	Time       string `json:"time"`
}

// KringenBoard is the inter-society dashboard snapshot. Times here use
// the hundredths presentation format.
type KringenBoard struct {
	CountdownTime   string                   `json:"countdownTime"`
	TotalRuns       int                      `json:"totalRuns"`
	ActiveKrings    []KringStanding          `json:"activeKrings"`
	ActiveRunners   map[string][]BoardRunner `json:"activeRunners"`
	Leaderboard     []FastestLap             `json:"leaderboard"`
	PreviousRunners []BoardRunner            `json:"previousRunners"`
}

// Kringen aggregates laps of the allow-listed kringen: per-kring average
// over all finished laps, the five fastest laps, the five most recent
// finishes and the currently running members grouped by kring. Laps must
// already be restricted to the allowed kringen and carry their Runner
// relation.
func Kringen(now time.Time, allowed []models.Kring, laps []*models.Lap) KringenBoard {
	names := map[int64]string{}
	for _, k := range allowed {
		names[k.ID] = k.Name
	}

	var finished, active []*models.Lap
	for _, l := range laps {
		if l.Runner == nil {
			continue
		}
		if _, ok := names[l.Runner.KringID]; !ok {
			continue
		}
		if l.Finished() {
			finished = append(finished, l)
		} else {
			active = append(active, l)
		}
	}

	board := KringenBoard{
		CountdownTime:   timefmt.FormatDurationHundredths(timefmt.CountdownToNextMinute(now)),
		TotalRuns:       len(finished),
		ActiveKrings:    []KringStanding{},
		ActiveRunners:   map[string][]BoardRunner{},
		Leaderboard:     []FastestLap{},
		PreviousRunners: []BoardRunner{},
	}

	sums := map[int64]time.Duration{}
	counts := map[int64]int{}
	for _, l := range finished {
		k := l.Runner.KringID
		sums[k] += timefmt.ParseDuration(l.Time)
		counts[k]++
	}
	for _, k := range allowed {
		if counts[k.ID] == 0 {
			continue
		}
		avg := sums[k.ID] / time.Duration(counts[k.ID])
		board.ActiveKrings = append(board.ActiveKrings, KringStanding{
			ID:          strconv.FormatInt(k.ID, 10),
			Name:        k.Name,
			LogoURL:     logoURL(k.Name),
			AverageTime: timefmt.FormatDurationHundredths(avg),
		})
	}

	fastest := make([]*models.Lap, len(finished))
	copy(fastest, finished)
	sort.Slice(fastest, func(i, j int) bool {
		di, dj := timefmt.ParseDuration(fastest[i].Time), timefmt.ParseDuration(fastest[j].Time)
		if di != dj {
			return di < dj
		}
		return fastest[i].ID < fastest[j].ID
	})
	for i, l := range fastest {
		if i == 5 {
			break
		}
		board.Leaderboard = append(board.Leaderboard, FastestLap{
			LapID:      strconv.FormatInt(l.ID, 10),
			RunnerID:   strconv.FormatInt(l.Runner.ID, 10),
			RunnerName: runnerName(l.Runner),
			KringID:    strconv.FormatInt(l.Runner.KringID, 10),
			KringName:  kringName(names, l.Runner.KringID),
			Time:       l.Time,
		})
	}

	recent := make([]*models.Lap, len(finished))
	copy(recent, finished)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].StartTime.After(recent[j].StartTime)
	})
	for i, l := range recent {
		if i == 5 {
			break
		}
		name := kringName(names, l.Runner.KringID)
		board.PreviousRunners = append(board.PreviousRunners, BoardRunner{
			ID:        strconv.FormatInt(l.ID, 10),
			Name:      runnerName(l.Runner),
			KringID:   strconv.FormatInt(l.Runner.KringID, 10),
			KringName: name,
			ImageURL:  logoURL(name),
			Time:      l.Time,
		})
	}

	seen := map[int64]bool{}
	for _, l := range active {
		if seen[l.Runner.ID] {
			continue
		}
		seen[l.Runner.ID] = true
		name := kringName(names, l.Runner.KringID)
		key := strconv.FormatInt(l.Runner.KringID, 10)
		board.ActiveRunners[key] = append(board.ActiveRunners[key], BoardRunner{
			ID:          strconv.FormatInt(l.Runner.ID, 10),
			Name:        runnerName(l.Runner),
			KringID:     key,
			KringName:   name,
			ImageURL:    logoURL(name),
			CurrentTime: l.StartTime.UTC().Format(time.RFC3339Nano),
		})
	}

	return board
}
