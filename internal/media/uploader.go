// Package media moves staged local files into object storage.
package media

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aniket1026/yoto/internal/logger"
	"github.com/Aniket1026/yoto/internal/utility"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Kind selects the key prefix and whether duration is probed.
type Kind string

const (
	KindAvatar    Kind = "avatar"
	KindCover     Kind = "cover"
	KindThumbnail Kind = "thumbnail"
	KindVideo     Kind = "video"
)

// UploadResult describes a stored object.
type UploadResult struct {
	URL      string
	Key      string
	Duration float64 // seconds, videos only
}

// UploadObserver is told about every upload attempt.
type UploadObserver interface {
	ObserveUpload(kind string, ok bool)
}

type keyResolver interface {
	KeyFromURL(url string) (string, bool)
}

// Uploader uploads staged files. It never returns raw storage errors.
type Uploader struct {
	store    ObjectStore
	prober   DurationProber
	timeout  time.Duration
	observer UploadObserver
	log      *logrus.Entry
}

// NewUploader wires a store and an optional prober. timeout <= 0 means 2 minutes.
func NewUploader(store ObjectStore, prober DurationProber, timeout time.Duration) *Uploader {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Uploader{
		store:   store,
		prober:  prober,
		timeout: timeout,
		log:     logger.WithModule("media"),
	}
}

// WithObserver attaches o and returns u.
func (u *Uploader) WithObserver(o UploadObserver) *Uploader {
	u.observer = o
	return u
}

// Upload stores localPath under <kind>/<uuid><ext> and returns nil on any failure.
// The local file is removed in every case.
func (u *Uploader) Upload(ctx context.Context, localPath string, kind Kind) (uploaded *UploadResult) {
	if localPath == "" {
		return nil
	}
	if u.observer != nil {
		defer func() { u.observer.ObserveUpload(string(kind), uploaded != nil) }()
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			u.log.WithError(err).WithField("path", localPath).Warn("failed to remove temp file")
		}
	}()

	log := u.log.WithFields(logrus.Fields{"path": localPath, "kind": kind})

	file, err := os.Open(localPath)
	if err != nil {
		log.WithError(err).Error("cannot open staged file")
		return nil
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.WithError(err).Error("cannot stat staged file")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	result := &UploadResult{}
	if kind == KindVideo && u.prober != nil {
		d, err := u.prober.Duration(ctx, localPath)
		if err != nil {
			log.WithError(err).Warn("duration probe failed, storing 0")
		}
		result.Duration = d
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	result.Key = string(kind) + "/" + uuid.NewString() + ext
	contentType := contentTypeOf(ext)

	if err := u.store.Put(ctx, result.Key, file, info.Size(), contentType); err != nil {
		log.WithError(err).Error("upload failed")
		return nil
	}
	result.URL = u.store.PublicURL(result.Key)

	log.WithFields(logrus.Fields{
		"key":  result.Key,
		"size": utility.FormatBytes(uint64(info.Size())),
	}).Info("media uploaded")
	return result
}

// Remove deletes a previously uploaded object. Failures are logged only.
func (u *Uploader) Remove(ctx context.Context, url string) {
	if url == "" {
		return
	}
	resolver, ok := u.store.(keyResolver)
	if !ok {
		return
	}
	key, ok := resolver.KeyFromURL(url)
	if !ok {
		u.log.WithField("url", url).Debug("url is not managed by this store, skipping removal")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	if err := u.store.Delete(ctx, key); err != nil {
		u.log.WithError(err).WithField("key", key).Warn("failed to remove media object")
	}
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func contentTypeOf(ext string) string {
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
