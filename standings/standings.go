// Package standings computes the polled dashboard views from loaded
// runner and lap rows. Everything here is a pure read over slices; the
// handlers fetch the rows and render the result as JSON.
package standings

import (
	"fmt"
	"strings"
	"time"

	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

// UnknownKring substitutes for a kring id that no longer resolves to a
// name; dashboards render it rather than failing the whole response.
const UnknownKring = "Unknown"

// BoardRunner is a runner line on any of the dashboards.
type BoardRunner struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	KringID     string `json:"kringId"`
	KringName   string `json:"kringName"`
	ImageURL    string `json:"imageUrl"`
	Time        string `json:"time,omitempty"`
	BestTime    string `json:"bestTime,omitempty"`
	CurrentTime string `json:"currentTime,omitempty"`
}

func runnerName(r *models.Runner) string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

func kringName(names map[int64]string, id int64) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return UnknownKring
}

// logoURL maps a kring name to its logo route; spaces are stripped the
// same way the asset files are named.
func logoURL(name string) string {
	return fmt.Sprintf("/api/kringen/%s/logo", strings.ReplaceAll(name, " ", ""))
}

// liveElapsed renders the server-side elapsed time of an open lap.
func liveElapsed(now time.Time, l *models.Lap) string {
	return timefmt.FormatDuration(now.Sub(l.StartTime))
}
