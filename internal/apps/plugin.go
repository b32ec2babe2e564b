package apps

import (
	"github.com/ahmetcoskunkizilkaya/auranote/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every feature module must implement.
type Plugin interface {
	// ID returns the unique module identifier, used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts routes on the given Fiber group.
	// The group is already prefixed with /api/p and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// PublicPlugin extends Plugin with routes that need no session.
type PublicPlugin interface {
	Plugin

	// RegisterPublicRoutes mounts routes on the /api group. Rate limiting
	// beyond the global limiter is the plugin's responsibility.
	RegisterPublicRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
