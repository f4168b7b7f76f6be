package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/Aniket1026/yoto/internal/global"
	"github.com/Aniket1026/yoto/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureDatabaseAndCollections creates every collection named in
// global.MongoDB_ColNames that does not exist yet.
func EnsureDatabaseAndCollections(client *mongo.Client) error {
	dbName := global.ServerConfig.MongoDB_DBName
	log := logger.WithModule("database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbList, err := client.ListDatabaseNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	if !contains(dbList, dbName) {
		log.Infof("Database %s does not exist, it will be created with its collections", dbName)
	}

	db := client.Database(dbName)
	collList, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range collectionNames(global.MongoDB_ColNames) {
		if contains(collList, name) {
			continue
		}
		log.Infof("Collection %s does not exist, creating", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	log.Infof("Database and collections are ensured in database: %s", dbName)
	return nil
}

func collectionNames(names interface{}) []string {
	v := reflect.ValueOf(names)
	result := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		if s := v.Field(i).String(); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// parseOrder reads order:-1 from a tag, defaulting to ascending.
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag splits `index:"unique,sparse;compound:owner_title"` into one map per ';' group.
func parseIndexTag(tag string) []map[string]string {
	parts := strings.Split(tag, ";")
	result := []map[string]string{}

	for _, part := range parts {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			subPart = strings.TrimSpace(subPart)
			if subPart == "" {
				continue
			}
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok || len(existingKeys) != len(keys) {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}
		newVal, isInt := key.Value.(int)
		if !isInt {
			if existingValue != key.Value {
				return false
			}
			continue
		}
		switch ev := existingValue.(type) {
		case int32:
			if int(ev) != newVal {
				return false
			}
		case int64:
			if int(ev) != newVal {
				return false
			}
		case float64:
			if int(ev) != newVal {
				return false
			}
		default:
			return false
		}
	}

	wantUnique := opts.Unique != nil && *opts.Unique
	if unique, _ := existingIndex["unique"].(bool); unique != wantUnique {
		return false
	}

	if ttl, ok := existingIndex["expireAfterSeconds"].(int32); ok && opts.ExpireAfterSeconds != nil {
		if ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

// checkAndReplaceIndex creates the index, dropping a same-named index whose definition differs.
func checkAndReplaceIndex(
	ctx context.Context,
	collection *mongo.Collection,
	existingIndexes map[string]bson.M,
	indexName string,
	keys bson.D,
	opts *options.IndexOptions,
) error {
	log := logger.WithModuleAndCollection("database", collection.Name())

	if existingIndex, exists := existingIndexes[indexName]; exists {
		if compareIndex(existingIndex, keys, opts) {
			log.Debugf("Index %s already up to date", indexName)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("failed to drop index %s: %w", indexName, err)
		}
		log.Infof("Dropped outdated index %s", indexName)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	}); err != nil {
		return fmt.Errorf("failed to create index %s: %w", indexName, err)
	}
	log.Infof("Created index %s", indexName)
	return nil
}

// CreateIndexes builds the indexes declared by `index` struct tags on model.
//
// Supported tag entries: unique, sparse, single, text, ttl:<seconds>,
// compound:<group> (a group name containing "_unique" makes it unique) and order:-1.
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("failed to decode index info: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range indexSpecs(modelType) {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec.name, spec.keys, spec.opts); err != nil {
			return err
		}
	}
	return nil
}

type indexSpec struct {
	name string
	keys bson.D
	opts *options.IndexOptions
}

// indexSpecs derives index definitions from the struct tags, compound groups last.
func indexSpecs(modelType reflect.Type) []indexSpec {
	var specs []indexSpec
	var groupOrder []string
	compoundGroups := map[string]bson.D{}
	compoundSparse := map[string]bool{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			if _, ok := cfg["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: "text"}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: parseOrder(tag)}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if _, sparse := cfg["sparse"]; sparse {
					opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				if ttl, err := strconv.Atoi(ttlValue); err == nil {
					name := bsonField + "_ttl"
					specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
				}
			}
			if group, ok := cfg["compound"]; ok {
				if _, seen := compoundGroups[group]; !seen {
					groupOrder = append(groupOrder, group)
				}
				compoundGroups[group] = append(compoundGroups[group], bson.E{Key: bsonField, Value: parseOrder(tag)})
				if _, sparse := cfg["sparse"]; sparse {
					compoundSparse[group] = true
				}
			}
		}
	}

	for _, group := range groupOrder {
		opts := options.Index().SetName(group)
		if strings.Contains(group, "_unique") {
			opts.SetUnique(true)
		}
		if compoundSparse[group] {
			opts.SetSparse(true)
		}
		specs = append(specs, indexSpec{group, compoundGroups[group], opts})
	}
	return specs
}
