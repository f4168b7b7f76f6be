package playlistsvc

import (
	"context"
	"strings"

	"github.com/Aniket1026/yoto/internal/api/authz"
	playlistdto "github.com/Aniket1026/yoto/internal/api/playlist/dto"
	models "github.com/Aniket1026/yoto/internal/api/playlist/models"
	usermodels "github.com/Aniket1026/yoto/internal/api/user/models"
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type playlistRepository interface {
	InsertOne(ctx context.Context, data models.Playlist) (models.Playlist, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Playlist, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Playlist, error)
	AddVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (models.Playlist, error)
	RemoveVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) (models.Playlist, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.Playlist, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// VideoCatalog resolves videos. A non-nil visibleTo keeps published videos
// plus those owned by visibleTo.
type VideoCatalog interface {
	FindWithOwners(ctx context.Context, ids []primitive.ObjectID, visibleTo *primitive.ObjectID) ([]videomodels.VideoWithOwner, error)
	FindPublishedWithOwners(ctx context.Context, ids []primitive.ObjectID) ([]videomodels.VideoWithOwner, error)
}

// ChannelDirectory finds channels by username.
type ChannelDirectory interface {
	FindByUsername(ctx context.Context, username string) (usermodels.User, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, actor primitive.ObjectID, kind authz.ResourceKind, id primitive.ObjectID) error
}

type PlaylistService struct {
	playlists playlistRepository
	videos    VideoCatalog
	channels  ChannelDirectory
	authz     Authorizer
	log       *logrus.Entry
}

func NewPlaylistService(playlists playlistRepository, videos VideoCatalog, channels ChannelDirectory, authorizer Authorizer) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		videos:    videos,
		channels:  channels,
		authz:     authorizer,
		log:       logger.WithModule("playlist"),
	}
}

func (s *PlaylistService) Create(ctx context.Context, owner primitive.ObjectID, input *playlistdto.CreatePlaylistInput) (*models.Playlist, error) {
	playlist, err := s.playlists.InsertOne(ctx, models.Playlist{
		Owner:       owner,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Videos:      []primitive.ObjectID{},
	})
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// Get resolves the playlist's videos in playlist order. The owner sees every
// video; everyone else only sees published ones.
func (s *PlaylistService) Get(ctx context.Context, viewer, id primitive.ObjectID) (*models.PlaylistDetail, error) {
	playlist, err := s.playlists.FindOneById(ctx, id)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return nil, errPlaylistNotFound
		}
		return nil, err
	}

	var found []videomodels.VideoWithOwner
	if playlist.Owner == viewer {
		found, err = s.videos.FindWithOwners(ctx, playlist.Videos, nil)
	} else {
		// drafts stay hidden even from their own owner here
		found, err = s.videos.FindPublishedWithOwners(ctx, playlist.Videos)
	}
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]videomodels.VideoWithOwner, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}

	videos := make([]videomodels.VideoWithOwner, 0, len(found))
	for _, videoID := range playlist.Videos {
		if v, ok := byID[videoID]; ok {
			videos = append(videos, v)
		}
	}

	return &models.PlaylistDetail{
		ID:          playlist.ID,
		Owner:       playlist.Owner,
		Name:        playlist.Name,
		Description: playlist.Description,
		Videos:      videos,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}, nil
}

// ListByChannel lists the playlists of the channel named username.
func (s *PlaylistService) ListByChannel(ctx context.Context, username string) ([]models.Playlist, error) {
	channel, err := s.channels.FindByUsername(ctx, username)
	if err != nil {
		if common.StatusOf(err) == common.StatusNotFound {
			return nil, common.ErrNotFound.WithMessage("Channel does not exist")
		}
		return nil, err
	}
	return s.playlists.FindByOwner(ctx, channel.ID)
}

// AddVideo adds a video the actor can see to the actor's playlist.
func (s *PlaylistService) AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	if err := s.authz.Authorize(ctx, actor, authz.KindPlaylist, playlistID); err != nil {
		return nil, err
	}
	visible, err := s.videos.FindWithOwners(ctx, []primitive.ObjectID{videoID}, &actor)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, common.ErrNotFound.WithMessage("Video not found")
	}

	playlist, err := s.playlists.AddVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"playlist_id": playlistID.Hex(), "video_id": videoID.Hex()}).Debug("video added to playlist")
	return &playlist, nil
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (*models.Playlist, error) {
	if err := s.authz.Authorize(ctx, actor, authz.KindPlaylist, playlistID); err != nil {
		return nil, err
	}
	playlist, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) Update(ctx context.Context, actor, playlistID primitive.ObjectID, input *playlistdto.UpdatePlaylistInput) (*models.Playlist, error) {
	fields := map[string]interface{}{}
	if name := strings.TrimSpace(input.Name); name != "" {
		fields["name"] = name
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return nil, common.ErrRequiredField.WithMessage("name or description is required")
	}

	if err := s.authz.Authorize(ctx, actor, authz.KindPlaylist, playlistID); err != nil {
		return nil, err
	}
	playlist, err := s.playlists.UpdateFields(ctx, playlistID, fields)
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) Delete(ctx context.Context, actor, playlistID primitive.ObjectID) error {
	if err := s.authz.Authorize(ctx, actor, authz.KindPlaylist, playlistID); err != nil {
		return err
	}
	return s.playlists.DeleteById(ctx, playlistID)
}
