// Package videosvc publishes, lists and removes videos.
package videosvc

import (
	"context"
	"fmt"
	"time"

	basemodels "github.com/Aniket1026/yoto/internal/api/base/models"
	basesvc "github.com/Aniket1026/yoto/internal/api/base/service"
	usermodels "github.com/Aniket1026/yoto/internal/api/user/models"
	models "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VideoStore is the videos collection.
type VideoStore struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	usersCollection string
}

func NewVideoStore() (*VideoStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %w", common.ErrNotFound)
	}
	return &VideoStore{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Video](coll),
		usersCollection:      global.MongoDB_ColNames.Users,
	}, nil
}

// Owner resolves the owner of a video for the authorizer.
func (s *VideoStore) Owner(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	video, err := s.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"owner": 1}))
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return primitive.NilObjectID, common.ErrNotFound.WithMessage("Video not found")
		}
		return primitive.NilObjectID, err
	}
	return video.Owner, nil
}

// FindOneWithOwner loads a video with its owner summary.
func (s *VideoStore) FindOneWithOwner(ctx context.Context, id primitive.ObjectID) (*models.VideoWithOwner, error) {
	var results []models.VideoWithOwner
	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}, s.ownerStages()...)
	if err := s.Aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, common.ErrNotFound.WithMessage("Video not found")
	}
	return &results[0], nil
}

// FindWithOwners loads the given videos in storage order. A non-nil visibleTo
// keeps published videos plus those owned by visibleTo.
func (s *VideoStore) FindWithOwners(ctx context.Context, ids []primitive.ObjectID, visibleTo *primitive.ObjectID) ([]models.VideoWithOwner, error) {
	match := bson.M{"_id": bson.M{"$in": ids}}
	if visibleTo != nil {
		match["$or"] = bson.A{bson.M{"isPublished": true}, bson.M{"owner": *visibleTo}}
	}
	return s.findMatching(ctx, ids, match)
}

// FindPublishedWithOwners loads only the published videos among ids.
func (s *VideoStore) FindPublishedWithOwners(ctx context.Context, ids []primitive.ObjectID) ([]models.VideoWithOwner, error) {
	return s.findMatching(ctx, ids, bson.M{"_id": bson.M{"$in": ids}, "isPublished": true})
}

func (s *VideoStore) findMatching(ctx context.Context, ids []primitive.ObjectID, match bson.M) ([]models.VideoWithOwner, error) {
	results := []models.VideoWithOwner{}
	if len(ids) == 0 {
		return results, nil
	}
	pipeline := append(mongo.Pipeline{{{Key: "$match", Value: match}}}, s.ownerStages()...)
	if err := s.Aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ListWithOwners pages through filter sorted by sort.
func (s *VideoStore) ListWithOwners(ctx context.Context, filter bson.M, sort bson.D, page, limit int64) (*basemodels.PaginateResult[models.VideoWithOwner], error) {
	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, s.ownerStages()...)

	items := []models.VideoWithOwner{}
	if err := s.Aggregate(ctx, pipeline, &items); err != nil {
		return nil, err
	}
	return basemodels.NewPaginateResult(items, page, limit, total), nil
}

func (s *VideoStore) ownerStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         s.usersCollection,
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline":     bson.A{bson.M{"$project": usermodels.SummaryProjection}},
		}}},
		{{Key: "$unwind", Value: "$owner"}},
	}
}

// UpdateFields sets fields on a video and returns it.
func (s *VideoStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.Video, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{Set: fields})
}

func (s *VideoStore) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Inc: bson.M{"views": 1}})
	return err
}

// TogglePublish flips isPublished atomically and returns the new document.
func (s *VideoStore) TogglePublish(ctx context.Context, id primitive.ObjectID) (models.Video, error) {
	var video models.Video
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"isPublished": bson.M{"$not": bson.A{"$isPublished"}},
			"updatedAt":   time.Now().UnixMilli(),
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.Collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&video); err != nil {
		return video, common.ConvertMongoError(err)
	}
	return video, nil
}
