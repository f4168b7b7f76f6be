package utility

import (
	"fmt"

	"github.com/Aniket1026/yoto/internal/common"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FormatBytes renders a byte count as B, KB, MB, ...
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ParseObjectID returns a BadRequest error carrying the raw id when malformed.
func ParseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, common.ErrInvalidID.WithDetails(map[string]string{"id": id})
	}
	return objectID, nil
}
