package global

import (
	"github.com/Aniket1026/yoto/config"
	"github.com/Aniket1026/yoto/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName holds the collection names used by the service.
type MongoDB_CollectionName struct {
	Users         string // registered accounts, refresh token and watch history
	Videos        string // published and draft videos
	Playlists     string // owner curated lists of video ids
	Subscriptions string // subscriber -> channel edges
}

// Shared state initialised once at startup
var (
	Validate            *validator.Validate                                 // request validator with custom rules
	MongoDB_Session     *mongo.Client                                       // shared MongoDB client
	ServerConfig        *config.Configuration                               // parsed environment config
	MongoDB_ColNames    MongoDB_CollectionName                              // collection names
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()         // collections by name
)
