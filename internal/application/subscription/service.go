// Package subscription interprets inbound chat commands and mutates the
// subscriber store accordingly.
package subscription

import (
	"context"

	"github.com/gameday-relay/internal/domain"
	"github.com/gameday-relay/internal/infrastructure/messenger"
	"go.uber.org/zap"
)

// Reply texts sent back to the sender after a command.
const (
	replySubscribed   = "Successfully subscribed. Message 'stop' to unsubscribe."
	replyUnsubscribed = "Successfully unsubscribed"
	replyError        = "Something went wrong"
)

// commandStop is matched case-sensitively; any other non-empty text subscribes.
const commandStop = "stop"

type Service interface {
	// HandleMessage applies the command carried by one inbound text message
	// and sends the sender a confirmation. The returned error reports the
	// store mutation outcome; reply delivery failures are only logged.
	HandleMessage(ctx context.Context, senderID, text string) error
}

type subscriberStore interface {
	Put(ctx context.Context, s *domain.Subscriber) error
	Delete(ctx context.Context, psid string) error
}

type service struct {
	repo   subscriberStore
	sender messenger.Sender
	log    *zap.SugaredLogger
}

func NewService(repo subscriberStore, sender messenger.Sender, log *zap.SugaredLogger) Service {
	return &service{repo: repo, sender: sender, log: log}
}

func (s *service) HandleMessage(ctx context.Context, senderID, text string) error {
	// Events without text (attachments, likes) carry no command.
	if text == "" {
		return nil
	}

	if text == commandStop {
		if err := s.repo.Delete(ctx, senderID); err != nil {
			s.log.Errorw("could not delete subscriber", "psid", senderID, "err", err)
			s.reply(ctx, senderID, replyError)
			return err
		}
		s.reply(ctx, senderID, replyUnsubscribed)
		return nil
	}

	if err := s.repo.Put(ctx, &domain.Subscriber{PSID: senderID}); err != nil {
		s.log.Errorw("could not save subscriber", "psid", senderID, "err", err)
		s.reply(ctx, senderID, replyError)
		return err
	}
	s.reply(ctx, senderID, replySubscribed)
	return nil
}

// reply is best-effort: a lost confirmation does not undo the store change.
func (s *service) reply(ctx context.Context, senderID, text string) {
	if err := s.sender.SendText(ctx, senderID, text); err != nil {
		s.log.Warnw("could not send reply", "psid", senderID, "err", err)
	}
}
