package http

import (
	"context"
	"time"

	"github.com/gameday-relay/internal/domain"
	"github.com/gameday-relay/internal/infrastructure/messenger"
	"go.uber.org/zap"
)

// SubscriberRepository is the minimal interface the router requires from the
// subscriber store.
type SubscriberRepository interface {
	Put(ctx context.Context, s *domain.Subscriber) error
	Delete(ctx context.Context, psid string) error
	Scan(ctx context.Context) ([]domain.Subscriber, error)
}

// ScheduleSource is the minimal interface the router requires from the
// schedule API client.
type ScheduleSource interface {
	NextGameTime(ctx context.Context, date string) (time.Time, bool, error)
}

// FeedSource is the minimal interface the router requires from the feed
// API client.
type FeedSource interface {
	NewestPosts(ctx context.Context) ([]domain.Post, error)
}

// Deps holds all infrastructure dependencies for the router. Everything is
// an interface so tests can substitute fakes.
type Deps struct {
	SubscriberRepo SubscriberRepository
	Sender         messenger.Sender
	Schedule       ScheduleSource
	Feed           FeedSource
	Logger         *zap.SugaredLogger
}
