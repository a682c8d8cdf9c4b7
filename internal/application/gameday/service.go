// Package gameday runs the scheduler-invoked notification workflow: check
// the schedule, find the stream post, and fan the link out to subscribers.
package gameday

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gameday-relay/internal/config"
	"github.com/gameday-relay/internal/domain"
	"github.com/gameday-relay/internal/infrastructure/messenger"
	"github.com/gameday-relay/internal/pkg/id"
	"go.uber.org/zap"
)

type Service interface {
	// Run executes one trigger invocation and returns a short outcome
	// description for the HTTP response body. It is a one-shot check: the
	// external scheduler is responsible for re-invoking it.
	Run(ctx context.Context) (string, error)
}

type scheduleSource interface {
	NextGameTime(ctx context.Context, date string) (time.Time, bool, error)
}

type feedSource interface {
	NewestPosts(ctx context.Context) ([]domain.Post, error)
}

type subscriberStore interface {
	Scan(ctx context.Context) ([]domain.Subscriber, error)
}

type service struct {
	schedule scheduleSource
	feed     feedSource
	repo     subscriberStore
	sender   messenger.Sender
	window   time.Duration
	author   string
	keyword  string
	log      *zap.SugaredLogger
}

func NewService(schedule scheduleSource, feed feedSource, repo subscriberStore, sender messenger.Sender, cfg *config.Config, log *zap.SugaredLogger) Service {
	return &service{
		schedule: schedule,
		feed:     feed,
		repo:     repo,
		sender:   sender,
		window:   cfg.NotifyWindow,
		author:   cfg.PostAuthor,
		keyword:  cfg.PostKeyword,
		log:      log,
	}
}

func (s *service) Run(ctx context.Context) (string, error) {
	log := s.log.With("run_id", id.New())

	today := time.Now().Format("2006-01-02")
	gameTime, ok, err := s.schedule.NextGameTime(ctx, today)
	if err != nil {
		return "", fmt.Errorf("check schedule: %w", err)
	}
	if !ok {
		log.Infow("no games today", "date", today)
		return "no games today", nil
	}

	until := time.Until(gameTime)
	if until <= 0 || until >= s.window {
		log.Infow("not within notification window", "game_time", gameTime, "until", until)
		return "not within notification window", nil
	}

	posts, err := s.feed.NewestPosts(ctx)
	if err != nil {
		return "", fmt.Errorf("check feed: %w", err)
	}
	post := firstMatch(posts, s.keyword, s.author)
	if post == nil {
		log.Infow("no matching post found")
		return "no matching post found", nil
	}

	subs, err := s.repo.Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("list subscribers: %w", err)
	}

	log.Infow("notifying subscribers", "count", len(subs), "post_url", post.URL)
	for _, sub := range subs {
		// One failed send must not stop the rest of the fan-out.
		if err := s.sender.SendText(ctx, sub.PSID, post.URL); err != nil {
			log.Warnw("could not notify subscriber", "psid", sub.PSID, "err", err)
		}
	}
	return fmt.Sprintf("notified %d subscribers", len(subs)), nil
}

// firstMatch scans posts in the order given (newest first) and returns the
// first whose title contains keyword (case-insensitive) and whose author
// matches exactly, or nil.
func firstMatch(posts []domain.Post, keyword, author string) *domain.Post {
	keyword = strings.ToLower(keyword)
	for i := range posts {
		if strings.Contains(strings.ToLower(posts[i].Title), keyword) && posts[i].Author == author {
			return &posts[i]
		}
	}
	return nil
}
