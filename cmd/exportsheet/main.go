// cmd/exportsheet/main.go
// Exports the current standings to a Google Sheet so the organising
// committee can archive results after the event.
//
// Usage:
//
//	SHEETS_CREDENTIALS=service-account.json SPREADSHEET_ID=... \
//	go run ./cmd/exportsheet
package main

import (
	"context"
	"log"
	"os"
	"sort"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/sdevrieze/urenloop/config"
	bundb "github.com/sdevrieze/urenloop/db"
	"github.com/sdevrieze/urenloop/models"
	"github.com/sdevrieze/urenloop/timefmt"
)

const sheetRuns = "Runs"
const sheetStandings = "Standings"

func main() {
	ctx := context.Background()

	cfg := config.Load()
	if cfg.SheetsCredentials == "" || cfg.SpreadsheetID == "" {
		log.Fatal("SHEETS_CREDENTIALS and SPREADSHEET_ID are required")
	}
	if _, err := os.Stat(cfg.SheetsCredentials); err != nil {
		log.Fatalf("service account json: %v", err)
	}

	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(cfg.SheetsCredentials),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		log.Fatalf("sheets service: %v", err)
	}

	db := bundb.Setup(cfg)
	defer db.Close()

	var laps []*models.Lap
	err = db.NewSelect().Model(&laps).
		Relation("Runner").
		Where("l.time != ?", models.PendingTime).
		Order("l.start_time ASC").
		Scan(ctx)
	if err != nil {
		log.Fatalf("load laps: %v", err)
	}

	kringNames := map[int64]string{}
	var kringen []models.Kring
	if err := db.NewSelect().Model(&kringen).Scan(ctx); err != nil {
		log.Fatalf("load kringen: %v", err)
	}
	for _, k := range kringen {
		kringNames[k.ID] = k.Name
	}

	runs := [][]interface{}{{"Start", "Runner", "Kring", "Time"}}
	best := map[int64]*models.Lap{}
	for _, l := range laps {
		runs = append(runs, []interface{}{
			l.StartTime.Format("2006-01-02 15:04:05"),
			l.Runner.FirstName + " " + l.Runner.LastName,
			kringNames[l.Runner.KringID],
			l.Time,
		})
		cur, ok := best[l.RunnerID]
		if !ok || timefmt.ParseDuration(l.Time) < timefmt.ParseDuration(cur.Time) {
			best[l.RunnerID] = l
		}
	}

	ranked := make([]*models.Lap, 0, len(best))
	for _, l := range best {
		ranked = append(ranked, l)
	}
	sort.Slice(ranked, func(i, j int) bool {
		di := timefmt.ParseDuration(ranked[i].Time)
		dj := timefmt.ParseDuration(ranked[j].Time)
		if di != dj {
			return di < dj
		}
		return ranked[i].RunnerID < ranked[j].RunnerID
	})

	standings := [][]interface{}{{"Rank", "Runner", "Kring", "Best time"}}
	for i, l := range ranked {
		standings = append(standings, []interface{}{
			i + 1,
			l.Runner.FirstName + " " + l.Runner.LastName,
			kringNames[l.Runner.KringID],
			l.Time,
		})
	}

	writeSheet(srv, cfg.SpreadsheetID, sheetRuns, runs)
	writeSheet(srv, cfg.SpreadsheetID, sheetStandings, standings)

	log.Printf("exported %d runs, %d runners", len(runs)-1, len(standings)-1)
}

func writeSheet(srv *sheetsv4.Service, spreadsheetID, sheet string, values [][]interface{}) {
	if _, err := srv.Spreadsheets.Values.Clear(spreadsheetID, sheet+"!A:Z",
		&sheetsv4.ClearValuesRequest{}).Do(); err != nil {
		log.Fatalf("clear %s: %v", sheet, err)
	}
	vr := &sheetsv4.ValueRange{Values: values}
	if _, err := srv.Spreadsheets.Values.Update(spreadsheetID, sheet+"!A1", vr).
		ValueInputOption("RAW").
		Do(); err != nil {
		log.Fatalf("write %s: %v", sheet, err)
	}
}
