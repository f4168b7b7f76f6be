package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aniket1026/yoto/internal/common"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// TempStore writes multipart parts to the local staging directory before upload.
type TempStore struct {
	Dir string
}

// Save stores the multipart field under a uuid name keeping the extension.
// A missing optional field returns "" and no error.
func (t TempStore) Save(c fiber.Ctx, field string, required bool) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		if required {
			return "", common.ErrRequiredField.WithMessage(fmt.Sprintf("%s file is required", field))
		}
		return "", nil
	}

	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return "", common.ErrInternal.WithDetails(err)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(t.Dir, uuid.NewString()+ext)
	if err := c.SaveFile(fh, path); err != nil {
		return "", common.ErrInternal.WithDetails(err)
	}
	return path, nil
}

// Cleanup removes staged files that never reached Upload.
func (t TempStore) Cleanup(paths ...string) {
	for _, p := range paths {
		if p != "" {
			_ = os.Remove(p)
		}
	}
}

// Sweep removes regular files in Dir last modified before cutoff and returns
// how many were removed. A missing Dir is not an error.
func (t TempStore) Sweep(cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(t.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(t.Dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
