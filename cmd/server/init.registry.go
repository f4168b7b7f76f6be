package main

import (
	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/global"
	"github.com/Aniket1026/yoto/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry registers every collection so stores can look them up by name.
func InitRegistry() {
	if err := InitCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize collections: %v", err)
	}
	logger.GetAppLogger().Info("Initialized collection registry")
}

// InitCollections registers the collections named in global.MongoDB_ColNames.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	log := logger.WithModule("registry")
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Videos,
		global.MongoDB_ColNames.Playlists,
		global.MongoDB_ColNames.Subscriptions,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if registered {
			log.Infof("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}
