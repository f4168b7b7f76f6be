package videodto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PublishVideoInput is the multipart form of POST /video; both files are required.
type PublishVideoInput struct {
	Title       string `form:"title" json:"title" validate:"required,max=200,no_xss"`
	Description string `form:"description" json:"description" validate:"required,max=5000,no_xss"`

	VideoPath     string `form:"-" json:"-"`
	ThumbnailPath string `form:"-" json:"-"`
}

// UpdateVideoInput needs at least one field or a new thumbnail file.
type UpdateVideoInput struct {
	Title       string `form:"title" json:"title" validate:"max=200,no_xss"`
	Description string `form:"description" json:"description" validate:"max=5000,no_xss"`

	ThumbnailPath string `form:"-" json:"-"`
}

// ListVideosQuery is GET /videos.
type ListVideosQuery struct {
	Page   int64
	Limit  int64
	Owner  *primitive.ObjectID
	Query  string `validate:"max=200,no_sql_injection"`
	SortBy string
	Desc   bool
}
