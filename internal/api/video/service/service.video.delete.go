package videosvc

import (
	"context"

	"github.com/Aniket1026/yoto/internal/api/authz"
	"github.com/Aniket1026/yoto/internal/common"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delete removes a video, then unlinks it from every playlist and watch
// history. The deletion stands even when the cleanup fails; the first
// cleanup error is then returned as Internal with the failed playlist ids.
func (s *VideoService) Delete(ctx context.Context, actor, id primitive.ObjectID) error {
	if err := s.authz.Authorize(ctx, actor, authz.KindVideo, id); err != nil {
		return err
	}
	video, err := s.videos.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if err := s.videos.DeleteById(ctx, id); err != nil {
		return err
	}

	log := s.log.WithField("video_id", id.Hex())
	log.Info("video deleted, unlinking references")

	failed, firstErr := s.unlinkFromPlaylists(ctx, id, log)

	if removed, err := s.history.PullFromWatchHistories(ctx, id); err != nil {
		log.WithError(err).Error("failed to pull video from watch histories")
		if firstErr == nil {
			firstErr = err
		}
	} else if removed > 0 {
		log.WithField("histories", removed).Debug("pulled video from watch histories")
	}

	s.uploader.Remove(ctx, video.VideoFile)
	s.uploader.Remove(ctx, video.Thumbnail)

	if firstErr == nil {
		return nil
	}
	if s.observer != nil {
		s.observer.CascadeFailed()
	}
	details := map[string]interface{}{"videoId": id.Hex(), "cause": firstErr.Error()}
	if len(failed) > 0 {
		details["playlists"] = failed
	}
	return common.ErrInternal.WithMessage("Video deleted but removing it from playlists failed").WithDetails(details)
}

// unlinkFromPlaylists visits every playlist holding id and keeps going after
// a failure. It returns the playlists that failed and the first error.
func (s *VideoService) unlinkFromPlaylists(ctx context.Context, id primitive.ObjectID, log *logrus.Entry) ([]string, error) {
	playlistIDs, err := s.playlists.PlaylistIDsContaining(ctx, id)
	if err != nil {
		log.WithError(err).Error("failed to find playlists containing video")
		return nil, err
	}

	var firstErr error
	var failed []string
	// No abort on the first failure: later playlists are still unlinked and
	// only the first error is reported. cmd/repair pulls whatever is left.
	for _, playlistID := range playlistIDs {
		if err := s.playlists.UnlinkVideo(ctx, playlistID, id); err != nil {
			log.WithError(err).WithField("playlist_id", playlistID.Hex()).Error("failed to unlink video from playlist")
			if firstErr == nil {
				firstErr = err
			}
			failed = append(failed, playlistID.Hex())
			continue
		}
		log.WithField("playlist_id", playlistID.Hex()).Debug("unlinked video from playlist")
	}
	return failed, firstErr
}
