package models

import (
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Playlist is an ordered set of videos; a video appears at most once.
type Playlist struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistDetail is a playlist with its videos resolved for one viewer.
type PlaylistDetail struct {
	ID          primitive.ObjectID           `json:"_id"`
	Owner       primitive.ObjectID           `json:"owner"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Videos      []videomodels.VideoWithOwner `json:"videos"`
	CreatedAt   int64                        `json:"createdAt"`
	UpdatedAt   int64                        `json:"updatedAt"`
}
