package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Aniket1026/yoto/config"
	userdto "github.com/Aniket1026/yoto/internal/api/user/dto"
	models "github.com/Aniket1026/yoto/internal/api/user/models"
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/media"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.User
	calls map[string]int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[primitive.ObjectID]models.User{}, calls: map[string]int{}}
}

func (f *fakeUsers) InsertOne(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["insert"]++
	for _, existing := range f.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return models.User{}, common.ErrMongoDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) FindOneById(_ context.Context, id primitive.ObjectID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == NormalizeUsername(username) {
			return u, nil
		}
	}
	return models.User{}, common.ErrNotFound
}

func (f *fakeUsers) FindByLogin(_ context.Context, email, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if (email != "" && u.Email == NormalizeEmail(email)) || (username != "" && u.Username == NormalizeUsername(username)) {
			return u, nil
		}
	}
	return models.User{}, common.ErrNotFound
}

func (f *fakeUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.RefreshToken = token
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) RotateRefreshToken(_ context.Context, id primitive.ObjectID, oldToken, newToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || u.RefreshToken != oldToken {
		return common.ErrRefreshTokenReused
	}
	u.RefreshToken = newToken
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	return f.SetRefreshToken(ctx, id, "")
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.Password = hash
	u.RefreshToken = ""
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) UpdateFields(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, common.ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "fullname":
			u.Fullname = value.(string)
		case "email":
			for otherID, other := range f.byID {
				if otherID != id && other.Email == value.(string) {
					return models.User{}, common.ErrMongoDuplicate
				}
			}
			u.Email = value.(string)
		case "avatar":
			u.Avatar = value.(string)
		case "coverImage":
			u.CoverImage = value.(string)
		}
	}
	f.byID[id] = u
	return u, nil
}

type fakeUploader struct {
	fail    map[media.Kind]bool
	uploads []media.Kind
	removed []string
}

func (f *fakeUploader) Upload(_ context.Context, localPath string, kind media.Kind) *media.UploadResult {
	f.uploads = append(f.uploads, kind)
	if f.fail[kind] {
		return nil
	}
	return &media.UploadResult{URL: "https://cdn.test/" + string(kind) + "/" + localPath, Key: string(kind) + "/" + localPath}
}

func (f *fakeUploader) Remove(_ context.Context, url string) {
	if url != "" {
		f.removed = append(f.removed, url)
	}
}

type fakeStats struct {
	subscribers, subscribedTo int64
	subscribed                bool
}

func (f fakeStats) CountSubscribers(context.Context, primitive.ObjectID) (int64, error) {
	return f.subscribers, nil
}

func (f fakeStats) CountSubscribedTo(context.Context, primitive.ObjectID) (int64, error) {
	return f.subscribedTo, nil
}

func (f fakeStats) IsSubscribed(context.Context, primitive.ObjectID, primitive.ObjectID) (bool, error) {
	return f.subscribed, nil
}

type fakeVideos struct {
	videos []videomodels.VideoWithOwner
}

func (f fakeVideos) FindWithOwners(_ context.Context, ids []primitive.ObjectID, visibleTo *primitive.ObjectID) ([]videomodels.VideoWithOwner, error) {
	out := []videomodels.VideoWithOwner{}
	for _, v := range f.videos {
		if visibleTo != nil && !v.IsPublished && v.Owner.ID != *visibleTo {
			continue
		}
		for _, id := range ids {
			if v.ID == id {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func newTestService() (*UserService, *fakeUsers, *fakeUploader) {
	users := newFakeUsers()
	uploader := &fakeUploader{fail: map[media.Kind]bool{}}
	tokens := utility.NewTokenManager(&config.Configuration{
		AccessTokenSecret:  "access-secret",
		RefreshTokenSecret: "refresh-secret",
		AccessTokenExpiry:  "15m",
		RefreshTokenExpiry: "240h",
		TokenIssuer:        "yoto",
	})
	return NewUserService(users, tokens, uploader), users, uploader
}

func registerAlice(t *testing.T, s *UserService) *models.User {
	t.Helper()
	user, err := s.Register(context.Background(), &userdto.RegisterInput{
		Username:   " Alice ",
		Fullname:   "Alice Liddell",
		Email:      "Alice@Example.com",
		Password:   "wonderland",
		AvatarPath: "avatar.png",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterHidesSecrets(t *testing.T) {
	s, users, _ := newTestService()
	user := registerAlice(t, s)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "wonderland", users.byID[user.ID].Password)
	assert.NotNil(t, user.WatchHistory)

	body, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "refreshToken")
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	s, users, uploader := newTestService()
	registerAlice(t, s)
	uploadsBefore := len(uploader.uploads)

	_, err := s.Register(context.Background(), &userdto.RegisterInput{
		Username: "alice", Fullname: "Other", Email: "other@example.com", Password: "secret1", AvatarPath: "a.png",
	})
	require.Error(t, err)
	assert.Equal(t, common.StatusConflict, common.StatusOf(err))
	assert.Len(t, users.byID, 1)
	assert.Equal(t, uploadsBefore, len(uploader.uploads), "no upload after a conflict")
}

func TestRegisterAvatarUploadFailure(t *testing.T) {
	s, users, uploader := newTestService()
	uploader.fail[media.KindAvatar] = true

	_, err := s.Register(context.Background(), &userdto.RegisterInput{
		Username: "bob", Fullname: "Bob", Email: "bob@example.com", Password: "secret1", AvatarPath: "a.png",
	})
	assert.Equal(t, common.StatusInternalServerError, common.StatusOf(err))
	assert.Empty(t, users.byID)
}

func TestRegisterWithoutAvatar(t *testing.T) {
	s, _, _ := newTestService()
	_, err := s.Register(context.Background(), &userdto.RegisterInput{
		Username: "bob", Fullname: "Bob", Email: "bob@example.com", Password: "secret1",
	})
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))
}

func TestLogin(t *testing.T) {
	s, users, _ := newTestService()
	alice := registerAlice(t, s)
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		result, err := s.Login(ctx, &userdto.LoginInput{Username: "alice", Password: "nope"})
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, common.ErrInvalidCredentials))
		assert.Equal(t, common.StatusUnauthorized, common.StatusOf(err))
		assert.Empty(t, users.byID[alice.ID].RefreshToken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Login(ctx, &userdto.LoginInput{Email: "nobody@example.com", Password: "x"})
		assert.Equal(t, common.StatusNotFound, common.StatusOf(err))
	})

	t.Run("success persists refresh token", func(t *testing.T) {
		result, err := s.Login(ctx, &userdto.LoginInput{Email: "ALICE@example.com", Password: "wonderland"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, result.RefreshToken, users.byID[alice.ID].RefreshToken)
	})
}

func TestRefreshRotationInvalidatesOldToken(t *testing.T) {
	s, users, _ := newTestService()
	alice := registerAlice(t, s)
	ctx := context.Background()

	login, err := s.Login(ctx, &userdto.LoginInput{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)

	pair, err := s.RefreshTokens(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, users.byID[alice.ID].RefreshToken)

	_, err = s.RefreshTokens(ctx, login.RefreshToken)
	assert.True(t, errors.Is(err, common.ErrRefreshTokenReused))

	_, err = s.RefreshTokens(ctx, "")
	assert.Equal(t, common.StatusUnauthorized, common.StatusOf(err))

	_, err = s.RefreshTokens(ctx, pair.AccessToken)
	assert.Equal(t, common.StatusUnauthorized, common.StatusOf(err), "access token is not a refresh token")
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	s, users, _ := newTestService()
	alice := registerAlice(t, s)
	ctx := context.Background()

	login, err := s.Login(ctx, &userdto.LoginInput{Username: "alice", Password: "wonderland"})
	require.NoError(t, err)
	require.NoError(t, s.Logout(ctx, alice.ID))
	assert.Empty(t, users.byID[alice.ID].RefreshToken)

	_, err = s.RefreshTokens(ctx, login.RefreshToken)
	assert.Equal(t, common.StatusUnauthorized, common.StatusOf(err))
}

func TestResetPassword(t *testing.T) {
	s, _, _ := newTestService()
	alice := registerAlice(t, s)
	ctx := context.Background()

	err := s.ResetPassword(ctx, alice.ID, &userdto.ResetPasswordInput{OldPassword: "wrong", NewPassword: "looking-glass"})
	assert.Equal(t, common.StatusBadRequest, common.StatusOf(err))

	require.NoError(t, s.ResetPassword(ctx, alice.ID, &userdto.ResetPasswordInput{OldPassword: "wonderland", NewPassword: "looking-glass"}))
	_, err = s.Login(ctx, &userdto.LoginInput{Username: "alice", Password: "looking-glass"})
	assert.NoError(t, err)
}

func TestUpdateAccountEmailConflict(t *testing.T) {
	s, _, _ := newTestService()
	alice := registerAlice(t, s)
	_, err := s.Register(context.Background(), &userdto.RegisterInput{
		Username: "bob", Fullname: "Bob", Email: "bob@example.com", Password: "secret1", AvatarPath: "b.png",
	})
	require.NoError(t, err)

	_, err = s.UpdateAccount(context.Background(), alice.ID, &userdto.UpdateAccountInput{Email: "BOB@example.com"})
	assert.Equal(t, common.StatusConflict, common.StatusOf(err))

	updated, err := s.UpdateAccount(context.Background(), alice.ID, &userdto.UpdateAccountInput{Fullname: "Alice L."})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.Fullname)
}

func TestUpdateAvatarRemovesOldObject(t *testing.T) {
	s, _, uploader := newTestService()
	alice := registerAlice(t, s)

	updated, err := s.UpdateAvatar(context.Background(), alice.ID, "new.png")
	require.NoError(t, err)
	assert.NotEqual(t, alice.Avatar, updated.Avatar)
	assert.Equal(t, []string{alice.Avatar}, uploader.removed)
}

func TestChannelProfile(t *testing.T) {
	s, _, _ := newTestService()
	registerAlice(t, s)
	s.SetSubscriptionStats(fakeStats{subscribers: 3, subscribedTo: 1, subscribed: true})

	profile, err := s.ChannelProfile(context.Background(), primitive.NewObjectID(), "ALICE")
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.SubscribersCount)
	assert.Equal(t, int64(1), profile.ChannelsSubscribedToCount)
	assert.True(t, profile.IsSubscribed)

	_, err = s.ChannelProfile(context.Background(), primitive.NewObjectID(), "nobody")
	assert.Equal(t, common.StatusNotFound, common.StatusOf(err))
}

func TestWatchHistoryKeepsOrderAndSkipsMissing(t *testing.T) {
	s, users, _ := newTestService()
	alice := registerAlice(t, s)
	bob := primitive.NewObjectID()

	first, second, deleted := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	ownDraft, bobsDraft := primitive.NewObjectID(), primitive.NewObjectID()
	u := users.byID[alice.ID]
	u.WatchHistory = []primitive.ObjectID{second, bobsDraft, deleted, ownDraft, first}
	users.byID[alice.ID] = u

	s.SetVideoResolver(fakeVideos{videos: []videomodels.VideoWithOwner{
		{ID: first, Title: "first", IsPublished: true, Owner: models.Summary{ID: bob}},
		{ID: second, Title: "second", IsPublished: true, Owner: models.Summary{ID: bob}},
		{ID: ownDraft, Title: "own draft", Owner: models.Summary{ID: alice.ID}},
		{ID: bobsDraft, Title: "unpublished by bob", Owner: models.Summary{ID: bob}},
	}})

	history, err := s.WatchHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "second", history[0].Title)
	assert.Equal(t, "own draft", history[1].Title)
	assert.Equal(t, "first", history[2].Title)
}
