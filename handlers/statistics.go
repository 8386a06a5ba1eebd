package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

type statLap struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type statCount struct {
	Name string `json:"name"`
	Laps int    `json:"laps"`
}

type statCurrent struct {
	Name      string     `json:"name"`
	StartTime *time.Time `json:"startTime"`
}

type statisticsResponse struct {
	CurrentRunner    statCurrent  `json:"currentRunner"`
	Last7Laps        []statLap    `json:"last7Laps"`
	Quickest7Runners []statLap    `json:"quickest7Runners"`
	CurrentQueue     []statLap    `json:"currentQueue"`
	GroupLapRanking  []statCount  `json:"groupLapRanking"`
	Top7Runners      []statCount  `json:"top7Runners"`
}

const statSlice = 7

// Statistics serves the big-screen statistics page: rolling feeds and
// most-laps rankings, everything capped at seven rows.
func (h *Handler) Statistics(c echo.Context) error {
	ctx := c.Request().Context()

	var laps []*models.Lap
	if err := h.db.NewSelect().Model(&laps).
		Relation("Runner").
		OrderExpr("l.start_time DESC").
		Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	out := statisticsResponse{
		Last7Laps:        []statLap{},
		Quickest7Runners: []statLap{},
		CurrentQueue:     []statLap{},
		GroupLapRanking:  []statCount{},
		Top7Runners:      []statCount{},
	}

	// Current runner: the newest open lap.
	for _, l := range laps {
		if l.Finished() || l.Runner == nil {
			continue
		}
		start := l.StartTime
		out.CurrentRunner = statCurrent{
			Name:      strings.TrimSpace(l.Runner.FirstName + " " + l.Runner.LastName),
			StartTime: &start,
		}
		break
	}

	bestByRunner := map[int64]*statBest{}
	lapsByRunner := map[int64]*statCount{}
	for _, l := range laps {
		if l.Runner == nil {
			continue
		}
		name := strings.TrimSpace(l.Runner.FirstName + " " + l.Runner.LastName)

		if rc, ok := lapsByRunner[l.Runner.ID]; ok {
			rc.Laps++
		} else {
			lapsByRunner[l.Runner.ID] = &statCount{Name: name, Laps: 1}
		}

		if !l.Finished() {
			continue
		}
		if len(out.Last7Laps) < statSlice {
			out.Last7Laps = append(out.Last7Laps, statLap{Name: name, Time: l.Time})
		}
		d := timefmt.ParseDuration(l.Time)
		if d == 0 {
			continue
		}
		if b, ok := bestByRunner[l.Runner.ID]; !ok || d < b.best {
			bestByRunner[l.Runner.ID] = &statBest{name: name, best: d, id: l.Runner.ID}
		}
	}

	quickest := make([]*statBest, 0, len(bestByRunner))
	for _, b := range bestByRunner {
		quickest = append(quickest, b)
	}
	sort.Slice(quickest, func(i, j int) bool {
		if quickest[i].best != quickest[j].best {
			return quickest[i].best < quickest[j].best
		}
		return quickest[i].id < quickest[j].id
	})
	for i, b := range quickest {
		if i == statSlice {
			break
		}
		out.Quickest7Runners = append(out.Quickest7Runners, statLap{
			Name: b.name,
			Time: timefmt.FormatDuration(b.best),
		})
	}

	var queue []models.QueueEntry
	err := h.db.NewSelect().Model(&queue).
		Relation("Runner").
		OrderExpr("q.queue_place ASC").
		Limit(statSlice).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, q := range queue {
		if q.Runner == nil {
			continue
		}
		out.CurrentQueue = append(out.CurrentQueue, statLap{
			Name: strings.TrimSpace(q.Runner.FirstName + " " + q.Runner.LastName),
		})
	}

	var groups []models.Group
	if err := h.db.NewSelect().Model(&groups).Scan(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	groupNames := map[int]string{}
	for _, g := range groups {
		groupNames[g.GroupNumber] = g.GroupName
	}
	groupCounts := map[int]int{}
	for _, l := range laps {
		if l.Runner == nil {
			continue
		}
		groupCounts[l.Runner.GroupNumber]++
	}
	for number, count := range groupCounts {
		name, ok := groupNames[number]
		if !ok {
			name = "Group " + strconv.Itoa(number)
		}
		out.GroupLapRanking = append(out.GroupLapRanking, statCount{Name: name, Laps: count})
	}
	sort.Slice(out.GroupLapRanking, func(i, j int) bool {
		if out.GroupLapRanking[i].Laps != out.GroupLapRanking[j].Laps {
			return out.GroupLapRanking[i].Laps > out.GroupLapRanking[j].Laps
		}
		return out.GroupLapRanking[i].Name < out.GroupLapRanking[j].Name
	})
	if len(out.GroupLapRanking) > statSlice {
		out.GroupLapRanking = out.GroupLapRanking[:statSlice]
	}

	top := make([]statCount, 0, len(lapsByRunner))
	for _, rc := range lapsByRunner {
		top = append(top, *rc)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Laps != top[j].Laps {
			return top[i].Laps > top[j].Laps
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > statSlice {
		top = top[:statSlice]
	}
	out.Top7Runners = top

	return c.JSON(http.StatusOK, out)
}

type statBest struct {
	name string
	best time.Duration
	id   int64
}
