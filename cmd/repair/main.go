// Command repair removes references to deleted videos from playlists and
// watch histories. Run it when video_delete_cascade_failures_total increases:
//
//	go run ./cmd/repair --dry-run
package main

import (
	"context"
	"os"
	"time"

	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/database"
	"github.com/Aniket1026/yoto/internal/logger"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// referenceField is an array of video ids held by another collection.
type referenceField struct {
	collection string
	field      string
}

var references = []referenceField{
	{collection: "playlists", field: "videos"},
	{collection: "users", field: "watchHistory"},
}

func main() {
	dryRun := flag.Bool("dry-run", false, "report dangling references without removing them")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall deadline")
	flag.Parse()

	if err := logger.Init(nil); err != nil {
		panic(err)
	}
	defer logger.Close()
	log := logger.WithModule("repair")

	cfg := config.NewConfig()
	client, err := database.GetInstance(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer database.CloseInstance(client)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := client.Database(cfg.MongoDB_DBName)
	failed := false
	for _, ref := range references {
		entry := log.WithFields(logrus.Fields{"collection": ref.collection, "field": ref.field})
		missing, modified, err := repair(ctx, db, ref, *dryRun)
		if err != nil {
			entry.WithError(err).Error("repair failed")
			failed = true
			continue
		}
		entry.WithFields(logrus.Fields{
			"dangling": len(missing),
			"modified": modified,
			"dry_run":  *dryRun,
		}).Info("checked references")
	}
	if failed {
		os.Exit(1)
	}
}

// repair finds ids in ref that no longer exist in videos and, unless dryRun,
// pulls them from every document.
func repair(ctx context.Context, db *mongo.Database, ref referenceField, dryRun bool) ([]primitive.ObjectID, int64, error) {
	coll := db.Collection(ref.collection)
	raw, err := coll.Distinct(ctx, ref.field, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	referenced := objectIDs(raw)
	if len(referenced) == 0 {
		return nil, 0, nil
	}

	rawExisting, err := db.Collection("videos").Distinct(ctx, "_id", bson.M{"_id": bson.M{"$in": referenced}})
	if err != nil {
		return nil, 0, err
	}
	missing := missingIDs(referenced, objectIDs(rawExisting))
	if len(missing) == 0 || dryRun {
		return missing, 0, nil
	}

	res, err := coll.UpdateMany(ctx,
		bson.M{ref.field: bson.M{"$in": missing}},
		bson.M{"$pull": bson.M{ref.field: bson.M{"$in": missing}}},
	)
	if err != nil {
		return missing, 0, err
	}
	return missing, res.ModifiedCount, nil
}

func objectIDs(values []interface{}) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// missingIDs returns the ids of referenced absent from existing, once each.
func missingIDs(referenced, existing []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(existing)+len(referenced))
	for _, id := range existing {
		seen[id] = true
	}
	var missing []primitive.ObjectID
	for _, id := range referenced {
		if !seen[id] {
			seen[id] = true
			missing = append(missing, id)
		}
	}
	return missing
}
