package authz

import (
	"context"
	"testing"

	"github.com/Aniket1026/yoto/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthorize(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	video := primitive.NewObjectID()

	a := NewAuthorizer()
	require.NoError(t, a.Register(KindVideo, func(_ context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
		if id != video {
			return primitive.NilObjectID, common.ErrNotFound
		}
		return owner, nil
	}))

	ctx := context.Background()
	assert.NoError(t, a.Authorize(ctx, owner, KindVideo, video))

	err := a.Authorize(ctx, stranger, KindVideo, video)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.Equal(t, common.StatusForbidden, common.StatusOf(err))

	err = a.Authorize(ctx, owner, KindVideo, primitive.NewObjectID())
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = a.Authorize(ctx, owner, KindPlaylist, video)
	assert.Equal(t, common.StatusInternalServerError, common.StatusOf(err))

	owns, err := a.IsOwner(ctx, primitive.NilObjectID, KindVideo, video)
	require.NoError(t, err)
	assert.False(t, owns)

	assert.Error(t, a.Register(KindPlaylist, nil))
}
