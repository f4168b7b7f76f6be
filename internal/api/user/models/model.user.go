// Package models holds the user documents and the read models derived from them.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account and a channel at the same time.
// Password and RefreshToken never leave the server.
type User struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username" index:"unique"`
	Email        string               `json:"email" bson:"email" index:"unique"`
	Fullname     string               `json:"fullname" bson:"fullname" index:"single"`
	Avatar       string               `json:"avatar" bson:"avatar"`
	CoverImage   string               `json:"coverImage" bson:"coverImage,omitempty"`
	Password     string               `json:"-" bson:"password"`
	RefreshToken string               `json:"-" bson:"refreshToken,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory" bson:"watchHistory"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}

// Summary is the public projection embedded in videos and subscription lists.
type Summary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	Fullname string             `json:"fullname" bson:"fullname"`
	Avatar   string             `json:"avatar" bson:"avatar"`
}

// SummaryProjection selects the Summary fields in $lookup pipelines.
var SummaryProjection = map[string]interface{}{
	"_id":      1,
	"username": 1,
	"fullname": 1,
	"avatar":   1,
}

// ChannelProfile is a user seen as a channel by another user.
type ChannelProfile struct {
	ID                        primitive.ObjectID `json:"_id"`
	Username                  string             `json:"username"`
	Fullname                  string             `json:"fullname"`
	Email                     string             `json:"email"`
	Avatar                    string             `json:"avatar"`
	CoverImage                string             `json:"coverImage"`
	SubscribersCount          int64              `json:"subscribersCount"`
	ChannelsSubscribedToCount int64              `json:"channelsSubscribedToCount"`
	IsSubscribed              bool               `json:"isSubscribed"`
}

// ToSummary drops everything but the public fields.
func (u *User) ToSummary() Summary {
	return Summary{ID: u.ID, Username: u.Username, Fullname: u.Fullname, Avatar: u.Avatar}
}
