// Package playlistsvc manages playlists and their video membership.
package playlistsvc

import (
	"context"
	"fmt"

	basesvc "github.com/Aniket1026/yoto/internal/api/base/service"
	models "github.com/Aniket1026/yoto/internal/api/playlist/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errPlaylistNotFound = common.ErrNotFound.WithMessage("Playlist not found")

// PlaylistStore is the playlists collection.
type PlaylistStore struct {
	*basesvc.BaseServiceMongoImpl[models.Playlist]
}

func NewPlaylistStore() (*PlaylistStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Playlists)
	if !exist {
		return nil, fmt.Errorf("failed to get playlists collection: %w", common.ErrNotFound)
	}
	return &PlaylistStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Playlist](coll)}, nil
}

// Owner resolves the owner of a playlist for the authorizer.
func (s *PlaylistStore) Owner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	playlist, err := s.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"owner": 1}))
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return primitive.NilObjectID, errPlaylistNotFound
		}
		return primitive.NilObjectID, err
	}
	return playlist.Owner, nil
}

// FindByOwner lists a channel's playlists, newest first.
func (s *PlaylistStore) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Playlist, error) {
	return s.Find(ctx, bson.M{"owner": owner}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// AddVideo appends videoID unless it is already a member. The membership
// guard and the $addToSet run in one update, so concurrent adds cannot
// both succeed.
func (s *PlaylistStore) AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (models.Playlist, error) {
	playlist, err := s.UpdateOne(ctx,
		bson.M{"_id": playlistID, "videos": bson.M{"$ne": videoID}},
		&basesvc.UpdateData{AddToSet: bson.M{"videos": videoID}},
	)
	if err == nil {
		return playlist, nil
	}
	if common.StatusOf(err) != common.StatusNotFound {
		return playlist, err
	}
	return playlist, s.explainMiss(ctx, playlistID,
		common.ErrDuplicate.WithMessage("Video already exists in playlist"))
}

// RemoveVideo pulls videoID; a video that is not a member is NotFound.
func (s *PlaylistStore) RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (models.Playlist, error) {
	playlist, err := s.UpdateOne(ctx,
		bson.M{"_id": playlistID, "videos": videoID},
		&basesvc.UpdateData{Pull: bson.M{"videos": videoID}},
	)
	if err == nil {
		return playlist, nil
	}
	if common.StatusOf(err) != common.StatusNotFound {
		return playlist, err
	}
	return playlist, s.explainMiss(ctx, playlistID,
		common.ErrNotFound.WithMessage("Video is not in this playlist"))
}

// explainMiss tells a missing playlist apart from a failed membership guard.
func (s *PlaylistStore) explainMiss(ctx context.Context, playlistID primitive.ObjectID, guardErr error) error {
	exists, err := s.DocumentExists(ctx, bson.M{"_id": playlistID})
	if err != nil {
		return err
	}
	if !exists {
		return errPlaylistNotFound
	}
	return guardErr
}

// UnlinkVideo pulls videoID whether or not it is a member. Safe to retry.
func (s *PlaylistStore) UnlinkVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error {
	_, err := s.UpdateMany(ctx,
		bson.M{"_id": playlistID},
		&basesvc.UpdateData{Pull: bson.M{"videos": videoID}},
	)
	return err
}

// PlaylistIDsContaining lists every playlist holding videoID.
func (s *PlaylistStore) PlaylistIDsContaining(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error) {
	playlists, err := s.Find(ctx, bson.M{"videos": videoID}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// UpdateFields sets fields on a playlist and returns it.
func (s *PlaylistStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.Playlist, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{Set: fields})
}
