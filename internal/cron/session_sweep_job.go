package cron

import (
	"context"
	"errors"
)

const sessionSweepJobName = "session_sweep"

type sweeper interface {
	Sweep(ctx context.Context) int
}

// SessionSweepJob evicts idle visitor sessions.
type SessionSweepJob struct {
	sessions sweeper
}

func NewSessionSweepJob(sessions sweeper) (*SessionSweepJob, error) {
	if sessions == nil {
		return nil, errors.New("session registry required")
	}
	return &SessionSweepJob{sessions: sessions}, nil
}

func (j *SessionSweepJob) Name() string { return sessionSweepJobName }

func (j *SessionSweepJob) Run(ctx context.Context) error {
	j.sessions.Sweep(ctx)
	return nil
}
