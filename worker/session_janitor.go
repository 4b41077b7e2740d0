package worker

import (
	"context"
	"log"
	"time"

	"quotabot/bot"
	"quotabot/repository"
)

// SessionJanitor drops conversation sessions that have gone idle, so a
// counterparty who abandoned the quote form mid-way starts fresh next
// time, and deactivates their dashboard session rows. Redis-backed
// stores expire on their own and prune nothing here.
type SessionJanitor struct {
	sessions    bot.SessionStore
	sessionRepo repository.SessionRepository
	maxIdle     time.Duration
	interval    time.Duration
	logger      *log.Logger
}

func NewSessionJanitor(sessions bot.SessionStore, sessionRepo repository.SessionRepository, maxIdle time.Duration, logger *log.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions:    sessions,
		sessionRepo: sessionRepo,
		maxIdle:     maxIdle,
		interval:    5 * time.Minute,
		logger:      logger,
	}
}

func (sj *SessionJanitor) Start(ctx context.Context) {
	sj.logger.Println("Starting session janitor...")
	ticker := time.NewTicker(sj.interval)

	for {
		select {
		case <-ticker.C:
			sj.prune()
		case <-ctx.Done():
			sj.logger.Println("Stopping session janitor...")
			ticker.Stop()
			return
		}
	}
}

func (sj *SessionJanitor) prune() {
	pruned, err := sj.sessions.PruneIdle(sj.maxIdle)
	if err != nil {
		sj.logger.Printf("Failed to prune sessions: %v", err)
		return
	}
	if len(pruned) == 0 {
		return
	}
	for _, identity := range pruned {
		if sj.sessionRepo == nil {
			continue
		}
		if err := sj.sessionRepo.DeactivateSession(identity); err != nil {
			sj.logger.Printf("Failed to deactivate session row for %s: %v", identity, err)
		}
	}
	sj.logger.Printf("Pruned %d idle session(s)", len(pruned))
}
