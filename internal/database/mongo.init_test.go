package database

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type indexedModel struct {
	Email      string `bson:"email" index:"unique,sparse"`
	Owner      string `bson:"owner" index:"single;compound:owner_title_unique"`
	Title      string `bson:"title,omitempty" index:"compound:owner_title_unique"`
	CreatedAt  int64  `bson:"createdAt" index:"single,order:-1"`
	ExpiresAt  int64  `bson:"expiresAt" index:"ttl:3600"`
	Untagged   string `bson:"untagged"`
	NotPersist string `bson:"-" index:"single"`
}

func TestParseIndexTag(t *testing.T) {
	got := parseIndexTag("unique,sparse;compound:owner_title_unique")
	require.Len(t, got, 2)
	assert.Equal(t, map[string]string{"unique": "", "sparse": ""}, got[0])
	assert.Equal(t, map[string]string{"compound": "owner_title_unique"}, got[1])

	assert.Equal(t, -1, parseOrder("single,order:-1"))
	assert.Equal(t, 1, parseOrder("single"))
}

func TestIndexSpecs(t *testing.T) {
	specs := indexSpecs(reflect.TypeOf(indexedModel{}))

	byName := map[string]indexSpec{}
	for _, s := range specs {
		byName[s.name] = s
	}

	email := byName["email_unique"]
	require.NotNil(t, email.opts)
	assert.True(t, *email.opts.Unique)
	assert.True(t, *email.opts.Sparse)

	compound := byName["owner_title_unique"]
	assert.Equal(t, bson.D{{Key: "owner", Value: 1}, {Key: "title", Value: 1}}, compound.keys)
	assert.True(t, *compound.opts.Unique)

	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, byName["createdAt_single"].keys)
	assert.Equal(t, int32(3600), *byName["expiresAt_ttl"].opts.ExpireAfterSeconds)

	_, hasIgnored := byName["-_single"]
	assert.False(t, hasIgnored)
	assert.Len(t, specs, 5)
}

func TestCompareIndex(t *testing.T) {
	keys := bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}}
	existing := bson.M{"key": bson.M{"subscriber": int32(1), "channel": int32(1)}, "unique": true}

	assert.True(t, compareIndex(existing, keys, options.Index().SetUnique(true)))
	assert.False(t, compareIndex(existing, keys, options.Index()))
	assert.False(t, compareIndex(existing, bson.D{{Key: "subscriber", Value: 1}}, options.Index().SetUnique(true)))
}
