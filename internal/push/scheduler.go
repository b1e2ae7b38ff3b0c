package push

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mwhitten/memento/internal/category"
	"github.com/mwhitten/memento/internal/store/sqlite"
)

// Scheduler sends the prompt of the day to users who opted into the daily
// reminder, at each user's chosen local hour.
type Scheduler struct {
	mu       sync.RWMutex
	service  *Service
	push     *sqlite.PushStore
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(svc *Service, pushStore *sqlite.PushStore) *Scheduler {
	return &Scheduler{
		service:  svc,
		push:     pushStore,
		interval: 60 * time.Second,
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick(time.Now())
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick(now time.Time) {
	userIDs, err := s.push.ListReminderUsers(now.Hour())
	if err != nil {
		log.Printf("push scheduler: list reminder users: %v", err)
		return
	}

	day := now.Format("2006-01-02")
	daily := category.Daily(now)

	for _, uid := range userIDs {
		sent, err := s.push.WasSent(uid, day)
		if err != nil {
			log.Printf("push scheduler: check sent: %v", err)
			continue
		}
		if sent {
			continue
		}

		subs, err := s.push.ListByUser(uid)
		if err != nil {
			log.Printf("push scheduler: list subs: %v", err)
			continue
		}
		if len(subs) == 0 {
			continue
		}

		payload := Payload{
			Title: "Today's Memory Prompt",
			Body:  fmt.Sprintf("%s: %s", daily.CategoryName, daily.Prompt),
			URL:   fmt.Sprintf("/category/%d", daily.CategoryID),
			Tag:   "daily-prompt",
		}

		for _, sub := range subs {
			if err := s.service.Send(&sub, payload); err != nil {
				if errors.Is(err, ErrExpired) {
					s.push.DeleteByEndpoint(sub.Endpoint)
				} else {
					log.Printf("push scheduler: send daily prompt: %v", err)
				}
			}
		}

		if err := s.push.RecordSent(uid, day); err != nil {
			log.Printf("push scheduler: record sent: %v", err)
		}
	}
}
