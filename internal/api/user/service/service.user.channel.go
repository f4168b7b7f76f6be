package usersvc

import (
	"context"

	models "github.com/Aniket1026/yoto/internal/api/user/models"
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChannelProfile returns the public profile of username as seen by viewer.
func (s *UserService) ChannelProfile(ctx context.Context, viewer primitive.ObjectID, username string) (*models.ChannelProfile, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, common.ErrRequiredField.WithMessage("username is missing")
	}
	channel, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return nil, common.ErrNotFound.WithMessage("Channel does not exist")
		}
		return nil, err
	}

	profile := &models.ChannelProfile{
		ID:         channel.ID,
		Username:   channel.Username,
		Fullname:   channel.Fullname,
		Email:      channel.Email,
		Avatar:     channel.Avatar,
		CoverImage: channel.CoverImage,
	}
	if s.subs == nil {
		return profile, nil
	}

	if profile.SubscribersCount, err = s.subs.CountSubscribers(ctx, channel.ID); err != nil {
		return nil, err
	}
	if profile.ChannelsSubscribedToCount, err = s.subs.CountSubscribedTo(ctx, channel.ID); err != nil {
		return nil, err
	}
	if profile.IsSubscribed, err = s.subs.IsSubscribed(ctx, viewer, channel.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

// WatchHistory resolves the user's history, most recent first. Deleted or
// no longer visible videos are skipped.
func (s *UserService) WatchHistory(ctx context.Context, userID primitive.ObjectID) ([]videomodels.VideoWithOwner, error) {
	user, err := s.users.FindOneById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.WatchHistory) == 0 || s.videos == nil {
		return []videomodels.VideoWithOwner{}, nil
	}

	found, err := s.videos.FindWithOwners(ctx, user.WatchHistory, &userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]videomodels.VideoWithOwner, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	history := make([]videomodels.VideoWithOwner, 0, len(found))
	for _, id := range user.WatchHistory {
		if v, ok := byID[id]; ok {
			history = append(history, v)
		}
	}
	return history, nil
}
