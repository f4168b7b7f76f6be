// Package subscriptionsvc keeps the subscriber/channel graph.
package subscriptionsvc

import (
	"context"
	"fmt"

	basesvc "github.com/Aniket1026/yoto/internal/api/base/service"
	models "github.com/Aniket1026/yoto/internal/api/subscription/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubscriptionStore is the subscriptions collection. The (subscriber, channel)
// pair is unique through a compound index.
type SubscriptionStore struct {
	*basesvc.BaseServiceMongoImpl[models.Subscription]
}

func NewSubscriptionStore() (*SubscriptionStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %w", common.ErrNotFound)
	}
	return &SubscriptionStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Subscription](coll)}, nil
}

// Subscribe is idempotent: an existing pair is not an error.
func (s *SubscriptionStore) Subscribe(ctx context.Context, subscriber, channel primitive.ObjectID) error {
	_, err := s.InsertOne(ctx, models.Subscription{Subscriber: subscriber, Channel: channel})
	if err != nil && common.StatusOf(err) == common.StatusConflict {
		return nil
	}
	return err
}

// Unsubscribe reports whether a subscription was removed.
func (s *SubscriptionStore) Unsubscribe(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	result, err := s.Collection().DeleteOne(ctx, bson.M{"subscriber": subscriber, "channel": channel})
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return result.DeletedCount > 0, nil
}

func (s *SubscriptionStore) CountSubscribers(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"channel": channel})
}

func (s *SubscriptionStore) CountSubscribedTo(ctx context.Context, subscriber primitive.ObjectID) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"subscriber": subscriber})
}

func (s *SubscriptionStore) IsSubscribed(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	if subscriber.IsZero() {
		return false, nil
	}
	return s.DocumentExists(ctx, bson.M{"subscriber": subscriber, "channel": channel})
}

// SubscriberIDs lists who follows channel, newest first.
func (s *SubscriptionStore) SubscriberIDs(ctx context.Context, channel primitive.ObjectID) ([]primitive.ObjectID, error) {
	subs, err := s.Find(ctx, bson.M{"channel": channel}, newestFirst())
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.Subscriber)
	}
	return ids, nil
}

// ChannelIDs lists the channels subscriber follows, newest first.
func (s *SubscriptionStore) ChannelIDs(ctx context.Context, subscriber primitive.ObjectID) ([]primitive.ObjectID, error) {
	subs, err := s.Find(ctx, bson.M{"subscriber": subscriber}, newestFirst())
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.Channel)
	}
	return ids, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
