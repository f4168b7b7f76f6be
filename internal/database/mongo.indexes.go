package database

import (
	"context"
	"errors"

	"github.com/Aniket1026/yoto/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateAdditionalIndexes creates indexes the struct tags cannot express.
// MongoDB allows a single text index per collection, so the weighted
// title/description search index lives here. Call after CreateIndexes.
func CreateAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	videos := db.Collection(global.MongoDB_ColNames.Videos)
	if _, err := videos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
		},
		Options: options.Index().
			SetName("video_search_text").
			SetWeights(bson.D{{Key: "title", Value: 5}, {Key: "description", Value: 1}}),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// playlists containing a video, used by the delete cascade
	playlists := db.Collection(global.MongoDB_ColNames.Playlists)
	if _, err := playlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "videos", Value: 1}},
		Options: options.Index().SetName("playlist_videos_multikey"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}
	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		// IndexOptionsConflict, IndexKeySpecsConflict
		return cmdErr.Code == 85 || cmdErr.Code == 86
	}
	return false
}
