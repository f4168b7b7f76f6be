package basesvc

import (
	"testing"

	basemodels "github.com/Aniket1026/yoto/internal/api/base/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type titleUpdate struct {
	Title       string `bson:"title,omitempty"`
	Description string `bson:"description,omitempty"`
}

func TestToUpdateDataWrapsStructInSet(t *testing.T) {
	u, err := ToUpdateData(titleUpdate{Title: "New title"})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"title": "New title"}, u.Set)
	assert.Nil(t, u.Pull)
}

func TestToUpdateDataPassesOperatorsThrough(t *testing.T) {
	in := &UpdateData{Pull: map[string]interface{}{"videos": "v1"}}
	out, err := ToUpdateData(in)
	require.NoError(t, err)
	assert.Same(t, in, out)

	out, err = ToUpdateData(UpdateData{Inc: map[string]interface{}{"views": 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Inc["views"])
}

func TestUpdateDataMarshalsOnlyUsedOperators(t *testing.T) {
	u := &UpdateData{AddToSet: map[string]interface{}{"videos": "v1"}}
	assert.False(t, u.isEmpty())
	u.touch()

	raw, err := bson.Marshal(u)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "$addToSet")
	assert.Contains(t, doc, "$set")
	assert.NotContains(t, doc, "$pull")
	assert.NotContains(t, doc, "$unset")

	assert.True(t, (&UpdateData{}).isEmpty())
}

func TestNewPaginateResult(t *testing.T) {
	p := basemodels.NewPaginateResult([]int{1, 2}, 2, 2, 5)
	assert.Equal(t, int64(3), p.TotalPage)
	assert.Equal(t, int64(2), p.ItemCount)

	empty := basemodels.NewPaginateResult[int](nil, 1, 10, 0)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.TotalPage)
}
