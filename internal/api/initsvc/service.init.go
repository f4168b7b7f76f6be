// Package initsvc builds the stores and services once at start-up and wires
// the cross-domain dependencies between them. It lives in its own package to
// avoid import cycles between the domain services.
package initsvc

import (
	"context"
	"fmt"

	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/api/authz"
	"github.com/Aniket1026/yoto/internal/api/middleware"
	playlistsvc "github.com/Aniket1026/yoto/internal/api/playlist/service"
	subscriptionsvc "github.com/Aniket1026/yoto/internal/api/subscription/service"
	usersvc "github.com/Aniket1026/yoto/internal/api/user/service"
	videosvc "github.com/Aniket1026/yoto/internal/api/video/service"
	"github.com/Aniket1026/yoto/internal/media"
	"github.com/Aniket1026/yoto/internal/metrics"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Services is the container handed to every route registration.
type Services struct {
	Config     *config.Configuration
	Tokens     *utility.TokenManager
	Uploader   *media.Uploader
	Temp       media.TempStore
	Authorizer *authz.Authorizer
	Metrics    *metrics.Metrics

	// Auth requires a valid access token.
	Auth fiber.Handler

	Users         *usersvc.UserStore
	Videos        *videosvc.VideoStore
	Playlists     *playlistsvc.PlaylistStore
	Subscriptions *subscriptionsvc.SubscriptionStore

	UserService         *usersvc.UserService
	VideoService        *videosvc.VideoService
	PlaylistService     *playlistsvc.PlaylistService
	SubscriptionService *subscriptionsvc.SubscriptionService
}

// NewServices builds every store from the registered collections. store is
// the object storage backend behind the media uploader.
func NewServices(cfg *config.Configuration, store media.ObjectStore, m *metrics.Metrics) (*Services, error) {
	users, err := usersvc.NewUserStore()
	if err != nil {
		return nil, err
	}
	videos, err := videosvc.NewVideoStore()
	if err != nil {
		return nil, err
	}
	playlists, err := playlistsvc.NewPlaylistStore()
	if err != nil {
		return nil, err
	}
	subscriptions, err := subscriptionsvc.NewSubscriptionStore()
	if err != nil {
		return nil, err
	}

	uploader := media.NewUploader(store, media.FFProbe{Path: cfg.FFProbePath}, cfg.UploadTimeout())
	if m != nil {
		uploader.WithObserver(m)
	}

	authorizer := authz.NewAuthorizer()
	if err := authorizer.Register(authz.KindVideo, videos.Owner); err != nil {
		return nil, fmt.Errorf("failed to register video owner resolver: %w", err)
	}
	if err := authorizer.Register(authz.KindPlaylist, playlists.Owner); err != nil {
		return nil, fmt.Errorf("failed to register playlist owner resolver: %w", err)
	}

	tokens := utility.NewTokenManager(cfg)

	s := &Services{
		Config:        cfg,
		Tokens:        tokens,
		Uploader:      uploader,
		Temp:          media.TempStore{Dir: cfg.MediaTempDir},
		Authorizer:    authorizer,
		Metrics:       m,
		Users:         users,
		Videos:        videos,
		Playlists:     playlists,
		Subscriptions: subscriptions,
	}

	s.UserService = usersvc.NewUserService(users, tokens, uploader)
	s.UserService.SetSubscriptionStats(subscriptions)
	s.UserService.SetVideoResolver(videos)

	var cascade videosvc.CascadeObserver
	if m != nil {
		cascade = m
	}
	s.VideoService = videosvc.NewVideoService(videos, playlists, users, authorizer, uploader, cascade)
	s.PlaylistService = playlistsvc.NewPlaylistService(playlists, videos, users, authorizer)
	s.SubscriptionService = subscriptionsvc.NewSubscriptionService(subscriptions, users)

	s.Auth = middleware.NewAuthMiddleware(tokens, func(ctx context.Context, id primitive.ObjectID) (interface{}, error) {
		return users.FindOneById(ctx, id)
	})
	return s, nil
}
