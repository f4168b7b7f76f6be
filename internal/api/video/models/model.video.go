package models

import (
	usermodels "github.com/Aniket1026/yoto/internal/api/user/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video is an uploaded video. Owner never changes after creation.
type Video struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner" index:"single;compound:owner_published"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished" index:"compound:owner_published"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// VideoWithOwner is a video whose owner id is resolved to a user summary.
type VideoWithOwner struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Owner       usermodels.Summary `json:"owner" bson:"owner"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   string             `json:"videoFile" bson:"videoFile"`
	Thumbnail   string             `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
