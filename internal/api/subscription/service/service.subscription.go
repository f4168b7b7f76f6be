package subscriptionsvc

import (
	"context"

	subscriptiondto "github.com/Aniket1026/yoto/internal/api/subscription/dto"
	usermodels "github.com/Aniket1026/yoto/internal/api/user/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type subscriptionRepository interface {
	Subscribe(ctx context.Context, subscriber, channel primitive.ObjectID) error
	Unsubscribe(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
	SubscriberIDs(ctx context.Context, channel primitive.ObjectID) ([]primitive.ObjectID, error)
	ChannelIDs(ctx context.Context, subscriber primitive.ObjectID) ([]primitive.ObjectID, error)
}

// UserDirectory resolves user ids.
type UserDirectory interface {
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]usermodels.Summary, error)
}

type SubscriptionService struct {
	subs  subscriptionRepository
	users UserDirectory
	log   *logrus.Entry
}

func NewSubscriptionService(subs subscriptionRepository, users UserDirectory) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, log: logger.WithModule("subscription")}
}

// Toggle subscribes subscriber to channel, or unsubscribes when already subscribed.
func (s *SubscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (*subscriptiondto.ToggleResult, error) {
	if subscriber == channel {
		return nil, common.ErrInvalidOperation.WithMessage("You cannot subscribe to your own channel")
	}
	if err := s.requireUser(ctx, channel, "Channel does not exist"); err != nil {
		return nil, err
	}

	removed, err := s.subs.Unsubscribe(ctx, subscriber, channel)
	if err != nil {
		return nil, err
	}
	if removed {
		return &subscriptiondto.ToggleResult{Subscribed: false}, nil
	}
	if err := s.subs.Subscribe(ctx, subscriber, channel); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"subscriber": subscriber.Hex(), "channel": channel.Hex()}).Debug("subscribed")
	return &subscriptiondto.ToggleResult{Subscribed: true}, nil
}

// Subscribers lists the users following channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]usermodels.Summary, error) {
	if err := s.requireUser(ctx, channel, "Channel does not exist"); err != nil {
		return nil, err
	}
	ids, err := s.subs.SubscriberIDs(ctx, channel)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

// Channels lists the channels subscriber follows.
func (s *SubscriptionService) Channels(ctx context.Context, subscriber primitive.ObjectID) ([]usermodels.Summary, error) {
	if err := s.requireUser(ctx, subscriber, "Subscriber does not exist"); err != nil {
		return nil, err
	}
	ids, err := s.subs.ChannelIDs(ctx, subscriber)
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, ids)
}

func (s *SubscriptionService) requireUser(ctx context.Context, id primitive.ObjectID, message string) error {
	exists, err := s.users.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return common.ErrNotFound.WithMessage(message)
	}
	return nil
}

// summaries keeps the order of ids and skips deleted accounts.
func (s *SubscriptionService) summaries(ctx context.Context, ids []primitive.ObjectID) ([]usermodels.Summary, error) {
	out := make([]usermodels.Summary, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	byID, err := s.users.FindSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if summary, ok := byID[id]; ok {
			out = append(out, summary)
		}
	}
	return out, nil
}
