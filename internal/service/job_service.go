package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

type SessionCompleter interface {
	CompleteEndedSessions(ctx context.Context, cutoff time.Time) ([]string, error)
}

// CompletionJob closes parking sessions once their booked end time has
// passed. The trips list shows a merged session as Completed from then on.
type CompletionJob struct {
	sessions SessionCompleter
	now      func() time.Time
}

func NewCompletionJob(sessions SessionCompleter) *CompletionJob {
	return &CompletionJob{sessions: sessions, now: time.Now}
}

func (j *CompletionJob) Run(ctx context.Context) error {
	ended, err := j.sessions.CompleteEndedSessions(ctx, j.now())
	if err != nil {
		return fmt.Errorf("closing ended parking sessions: %w", err)
	}
	if len(ended) > 0 {
		log.Printf("Closed %d parking sessions past their end time: %s", len(ended), strings.Join(ended, ", "))
	}
	return nil
}
