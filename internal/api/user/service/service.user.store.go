// Package usersvc holds the user store and the account, credential and
// channel operations built on it.
package usersvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	basesvc "github.com/Aniket1026/yoto/internal/api/base/service"
	models "github.com/Aniket1026/yoto/internal/api/user/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MaxWatchHistory caps the number of ids kept per user.
const MaxWatchHistory = 100

// UserStore is the users collection.
type UserStore struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserStore binds the registered users collection.
func NewUserStore() (*UserStore, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %w", common.ErrNotFound)
	}
	return &UserStore{BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](coll)}, nil
}

// FindByUsername matches the normalized username.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.FindOne(ctx, bson.M{"username": NormalizeUsername(username)}, nil)
}

// FindByLogin matches either identifier; empty ones are ignored.
func (s *UserStore) FindByLogin(ctx context.Context, email, username string) (models.User, error) {
	or := bson.A{}
	if email = NormalizeEmail(email); email != "" {
		or = append(or, bson.M{"email": email})
	}
	if username = NormalizeUsername(username); username != "" {
		or = append(or, bson.M{"username": username})
	}
	if len(or) == 0 {
		return models.User{}, common.ErrRequiredField.WithMessage("username or email is required")
	}
	return s.FindOne(ctx, bson.M{"$or": or}, nil)
}

// ExistsByUsernameOrEmail reports whether either identifier is taken.
func (s *UserStore) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"$or": bson.A{
		bson.M{"username": NormalizeUsername(username)},
		bson.M{"email": NormalizeEmail(email)},
	}})
}

func (s *UserStore) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.DocumentExists(ctx, bson.M{"_id": id})
}

// SetRefreshToken replaces whatever token was stored.
func (s *UserStore) SetRefreshToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: bson.M{"refreshToken": token}})
	return err
}

// RotateRefreshToken swaps oldToken for newToken only while oldToken is still
// the stored one. Losing the race yields ErrRefreshTokenReused.
func (s *UserStore) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) error {
	_, err := s.UpdateOne(ctx,
		bson.M{"_id": id, "refreshToken": oldToken},
		&basesvc.UpdateData{Set: bson.M{"refreshToken": newToken}},
	)
	if err != nil && common.StatusOf(err) == common.StatusNotFound {
		return common.ErrRefreshTokenReused
	}
	return err
}

func (s *UserStore) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Unset: bson.M{"refreshToken": ""}})
	return err
}

// UpdatePassword stores the new hash and revokes the refresh token.
func (s *UserStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{
		Set:   bson.M{"password": hash},
		Unset: bson.M{"refreshToken": ""},
	})
	return err
}

// UpdateFields sets the given fields and returns the updated user.
func (s *UserStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.User, error) {
	return s.UpdateById(ctx, id, &basesvc.UpdateData{Set: fields})
}

// PushWatchHistory moves videoID to the front of the user's history in a
// single update, dropping older copies and trimming to MaxWatchHistory.
func (s *UserStore) PushWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"watchHistory": bson.M{"$slice": bson.A{
				bson.M{"$concatArrays": bson.A{
					bson.A{videoID},
					bson.M{"$filter": bson.M{
						"input": bson.M{"$ifNull": bson.A{"$watchHistory", bson.A{}}},
						"cond":  bson.M{"$ne": bson.A{"$$this", videoID}},
					}},
				}},
				MaxWatchHistory,
			}},
			"updatedAt": time.Now().UnixMilli(),
		}}},
	}
	result, err := s.Collection().UpdateOne(ctx, bson.M{"_id": userID}, pipeline)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.MatchedCount == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

// PullFromWatchHistories removes videoID from every history. Safe to retry.
func (s *UserStore) PullFromWatchHistories(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	return s.UpdateMany(ctx,
		bson.M{"watchHistory": videoID},
		&basesvc.UpdateData{Pull: bson.M{"watchHistory": videoID}},
	)
}

// FindSummaries resolves ids to public projections keyed by id.
func (s *UserStore) FindSummaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Summary, error) {
	users, err := s.FindManyByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.Summary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].ToSummary()
	}
	return out, nil
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
