package main

import (
	"context"
	"time"

	"github.com/Aniket1026/yoto/config"
	playlistmodels "github.com/Aniket1026/yoto/internal/api/playlist/models"
	subscriptionmodels "github.com/Aniket1026/yoto/internal/api/subscription/models"
	usermodels "github.com/Aniket1026/yoto/internal/api/user/models"
	videomodels "github.com/Aniket1026/yoto/internal/api/video/models"
	"github.com/Aniket1026/yoto/internal/database"
	"github.com/Aniket1026/yoto/internal/global"
	"github.com/Aniket1026/yoto/internal/logger"
)

// InitGlobal prepares the shared state: collection names, validator, config and MongoDB.
func InitGlobal() {
	initColNames()
	initValidator()
	initConfig()
	initDatabase_MongoDB()
}

func initColNames() {
	global.MongoDB_ColNames.Users = "users"
	global.MongoDB_ColNames.Videos = "videos"
	global.MongoDB_ColNames.Playlists = "playlists"
	global.MongoDB_ColNames.Subscriptions = "subscriptions"

	logger.GetAppLogger().Info("Initialized collection names")
}

func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logger.GetAppLogger().Fatal("Failed to initialize config: config is nil")
	}
	logger.GetAppLogger().Info("Initialized server config")
}

func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	log.Info("Connected to MongoDB")

	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		log.Fatalf("Failed to ensure database and collections: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	models := map[string]interface{}{
		global.MongoDB_ColNames.Users:         usermodels.User{},
		global.MongoDB_ColNames.Videos:        videomodels.Video{},
		global.MongoDB_ColNames.Playlists:     playlistmodels.Playlist{},
		global.MongoDB_ColNames.Subscriptions: subscriptionmodels.Subscription{},
	}
	for name, model := range models {
		if err := database.CreateIndexes(ctx, db.Collection(name), model); err != nil {
			log.Fatalf("Failed to create indexes for %s: %v", name, err)
		}
	}
	if err := database.CreateAdditionalIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create additional indexes: %v", err)
	}
	log.Info("Ensured collections and indexes")
}
