package videosvc

import (
	"context"
	"strings"

	basemodels "github.com/Aniket1026/yoto/internal/api/base/models"
	"github.com/Aniket1026/yoto/internal/api/authz"
	videodto "github.com/Aniket1026/yoto/internal/api/video/dto"
	models "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/common"
	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/media"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type videoRepository interface {
	InsertOne(ctx context.Context, data models.Video) (models.Video, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (models.Video, error)
	FindOneWithOwner(ctx context.Context, id primitive.ObjectID) (*models.VideoWithOwner, error)
	ListWithOwners(ctx context.Context, filter bson.M, sort bson.D, page, limit int64) (*basemodels.PaginateResult[models.VideoWithOwner], error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (models.Video, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) error
	TogglePublish(ctx context.Context, id primitive.ObjectID) (models.Video, error)
	DeleteById(ctx context.Context, id primitive.ObjectID) error
}

// PlaylistUnlinker removes a deleted video from playlists.
type PlaylistUnlinker interface {
	PlaylistIDsContaining(ctx context.Context, videoID primitive.ObjectID) ([]primitive.ObjectID, error)
	UnlinkVideo(ctx context.Context, playlistID, videoID primitive.ObjectID) error
}

// WatchHistory records and forgets viewed videos.
type WatchHistory interface {
	PushWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error
	PullFromWatchHistories(ctx context.Context, videoID primitive.ObjectID) (int64, error)
}

// Authorizer checks ownership of a resource.
type Authorizer interface {
	Authorize(ctx context.Context, actor primitive.ObjectID, kind authz.ResourceKind, id primitive.ObjectID) error
}

// CascadeObserver counts failed cascades.
type CascadeObserver interface {
	CascadeFailed()
}

type mediaUploader interface {
	Upload(ctx context.Context, localPath string, kind media.Kind) *media.UploadResult
	Remove(ctx context.Context, url string)
}

type VideoService struct {
	videos    videoRepository
	playlists PlaylistUnlinker
	history   WatchHistory
	authz     Authorizer
	uploader  mediaUploader
	observer  CascadeObserver
	log       *logrus.Entry
}

func NewVideoService(videos videoRepository, playlists PlaylistUnlinker, history WatchHistory, authorizer Authorizer, uploader mediaUploader, observer CascadeObserver) *VideoService {
	return &VideoService{
		videos:    videos,
		playlists: playlists,
		history:   history,
		authz:     authorizer,
		uploader:  uploader,
		observer:  observer,
		log:       logger.WithModule("video"),
	}
}

// Publish uploads the video file and the thumbnail, then stores the video.
func (s *VideoService) Publish(ctx context.Context, owner primitive.ObjectID, input *videodto.PublishVideoInput) (*models.Video, error) {
	if input.VideoPath == "" || input.ThumbnailPath == "" {
		return nil, common.ErrRequiredField.WithMessage("Video and thumbnail files are required")
	}

	videoFile := s.uploader.Upload(ctx, input.VideoPath, media.KindVideo)
	if videoFile == nil {
		return nil, common.ErrUploadFailed.WithMessage("Video upload failed")
	}
	thumbnail := s.uploader.Upload(ctx, input.ThumbnailPath, media.KindThumbnail)
	if thumbnail == nil {
		s.uploader.Remove(ctx, videoFile.URL)
		return nil, common.ErrUploadFailed.WithMessage("Thumbnail upload failed")
	}

	video, err := s.videos.InsertOne(ctx, models.Video{
		Owner:       owner,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		VideoFile:   videoFile.URL,
		Thumbnail:   thumbnail.URL,
		Duration:    videoFile.Duration,
		IsPublished: true,
	})
	if err != nil {
		s.uploader.Remove(ctx, videoFile.URL)
		s.uploader.Remove(ctx, thumbnail.URL)
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"video_id": video.ID.Hex(), "owner": owner.Hex()}).Info("video published")
	return &video, nil
}

// Get returns a video for viewer. Unpublished videos exist only for their
// owner. Each read counts a view and lands at the front of viewer's history.
func (s *VideoService) Get(ctx context.Context, viewer, id primitive.ObjectID) (*models.VideoWithOwner, error) {
	video, err := s.videos.FindOneWithOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished && video.Owner.ID != viewer {
		return nil, common.ErrNotFound.WithMessage("Video not found")
	}

	if err := s.videos.IncrementViews(ctx, id); err != nil {
		s.log.WithError(err).WithField("video_id", id.Hex()).Warn("failed to count view")
	} else {
		video.Views++
	}
	if !viewer.IsZero() {
		if err := s.history.PushWatchHistory(ctx, viewer, id); err != nil {
			s.log.WithError(err).WithField("video_id", id.Hex()).Warn("failed to update watch history")
		}
	}
	return video, nil
}

// List pages through videos. Unpublished videos are listed only when the
// viewer asks for their own channel.
func (s *VideoService) List(ctx context.Context, viewer primitive.ObjectID, query *videodto.ListVideosQuery) (*basemodels.PaginateResult[models.VideoWithOwner], error) {
	return s.videos.ListWithOwners(ctx, listFilter(viewer, query), listSort(query), query.Page, query.Limit)
}

func listFilter(viewer primitive.ObjectID, query *videodto.ListVideosQuery) bson.M {
	filter := bson.M{}
	if q := strings.TrimSpace(query.Query); q != "" {
		filter["$text"] = bson.M{"$search": q}
	}
	if query.Owner != nil {
		filter["owner"] = *query.Owner
		if *query.Owner == viewer {
			return filter
		}
	}
	filter["isPublished"] = true
	return filter
}

var sortableFields = map[string]string{
	"createdAt": "createdAt",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

func listSort(query *videodto.ListVideosQuery) bson.D {
	field, ok := sortableFields[query.SortBy]
	if !ok {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	order := 1
	if query.Desc {
		order = -1
	}
	return bson.D{{Key: field, Value: order}, {Key: "_id", Value: order}}
}

// Update changes title, description and/or the thumbnail. Owner only.
func (s *VideoService) Update(ctx context.Context, actor, id primitive.ObjectID, input *videodto.UpdateVideoInput) (*models.Video, error) {
	fields := map[string]interface{}{}
	if title := strings.TrimSpace(input.Title); title != "" {
		fields["title"] = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 && input.ThumbnailPath == "" {
		return nil, common.ErrRequiredField.WithMessage("title, description or thumbnail is required")
	}

	if err := s.authz.Authorize(ctx, actor, authz.KindVideo, id); err != nil {
		return nil, err
	}
	current, err := s.videos.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	var thumbnail *media.UploadResult
	if input.ThumbnailPath != "" {
		if thumbnail = s.uploader.Upload(ctx, input.ThumbnailPath, media.KindThumbnail); thumbnail == nil {
			return nil, common.ErrUploadFailed.WithMessage("Thumbnail upload failed")
		}
		fields["thumbnail"] = thumbnail.URL
	}

	video, err := s.videos.UpdateFields(ctx, id, fields)
	if err != nil {
		if thumbnail != nil {
			s.uploader.Remove(ctx, thumbnail.URL)
		}
		return nil, err
	}
	if thumbnail != nil && current.Thumbnail != "" {
		s.uploader.Remove(ctx, current.Thumbnail)
	}
	return &video, nil
}

// TogglePublish flips the published flag. Owner only.
func (s *VideoService) TogglePublish(ctx context.Context, actor, id primitive.ObjectID) (*models.Video, error) {
	if err := s.authz.Authorize(ctx, actor, authz.KindVideo, id); err != nil {
		return nil, err
	}
	video, err := s.videos.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}
	return &video, nil
}
