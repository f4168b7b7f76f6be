package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIsDerived(t *testing.T) {
	derived := ErrNotFound.WithMessage("Video not found")

	assert.True(t, errors.Is(derived, ErrNotFound))
	assert.Equal(t, StatusNotFound, derived.StatusCode)
	assert.Equal(t, "Video not found", derived.Error())
	assert.False(t, errors.Is(derived, ErrForbidden))

	wrapped := fmt.Errorf("loading playlist: %w", derived)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, StatusNotFound, StatusOf(wrapped))
}

func TestConvertMongoError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, ConvertMongoError(nil))
	})

	t.Run("no documents becomes not found", func(t *testing.T) {
		err := ConvertMongoError(mongo.ErrNoDocuments)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Equal(t, StatusNotFound, StatusOf(err))
	})

	t.Run("duplicate key becomes conflict", func(t *testing.T) {
		dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
		err := ConvertMongoError(dup)
		assert.True(t, errors.Is(err, ErrDuplicate))
		assert.Equal(t, StatusConflict, StatusOf(err))
	})

	t.Run("typed errors pass through", func(t *testing.T) {
		assert.Same(t, ErrForbidden, ConvertMongoError(ErrForbidden))
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		err := ConvertMongoError(errors.New("boom"))
		assert.Equal(t, StatusInternalServerError, StatusOf(err))
	})
}

func TestStatusOfUntyped(t *testing.T) {
	assert.Equal(t, StatusInternalServerError, StatusOf(errors.New("plain")))
	assert.Equal(t, StatusUnauthorized, StatusOf(ErrTokenInvalid))
}
