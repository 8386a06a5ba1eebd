// Package race implements the queue and lap state transitions behind the
// timing endpoints. Every mutating operation runs as a single database
// transaction; the store is the only concurrency boundary.
package race

import (
	"errors"
	"time"
)

var (
	// ErrRunnerNotFound is returned when an id or identification code
	// does not resolve to a registered runner.
	ErrRunnerNotFound = errors.New("runner not found")
	// ErrQueueEntryNotFound is returned when a queue place or id is absent.
	ErrQueueEntryNotFound = errors.New("queue entry not found")
	// ErrQueueEmpty is returned by StartNext when nobody is waiting.
	ErrQueueEmpty = errors.New("queue is empty")
	// ErrAlreadyRunning is returned when a start would open a second lap.
	ErrAlreadyRunning = errors.New("runner already has an open lap")
	// ErrNoOpenLap is returned by a stop with no lap to close.
	ErrNoOpenLap = errors.New("no open lap for runner")
	// ErrNothingToUndo is returned when the undo log is empty or its lap
	// has already been stopped.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// nowFunc is swapped out by tests.
var nowFunc = time.Now
