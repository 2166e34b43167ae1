// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"ticketeer/internal/areas"
	"ticketeer/internal/eventareas"
	"ticketeer/internal/eventimport"
	"ticketeer/internal/events"
	"ticketeer/internal/inventory"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/clock"
	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/shared/middleware"
	"ticketeer/internal/tickets"
	"ticketeer/internal/users"
	"ticketeer/internal/venues"
	"ticketeer/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Models lists every table the service owns, parents first.
func Models() []any {
	return []any{
		&venues.Venue{},
		&venues.Layout{},
		&areas.Area{},
		&areas.Seat{},
		&events.Event{},
		&eventareas.EventArea{},
		&eventareas.EventSeat{},
		&users.User{},
		&tickets.Ticket{},
	}
}

// Services is the wired application, shared by the HTTP router, the feed
// consumer and the seeder.
type Services struct {
	Inventory  *inventory.Manager
	Venues     venues.Service
	Areas      areas.Service
	Events     events.Service
	EventAreas eventareas.Service
	Users      users.Service
	Tickets    tickets.Service
	Importer   *eventimport.Importer
	Clock      clock.Clock
}

// NewServices builds every service on top of PostgreSQL. Redis, when
// connected, backs the read caches.
func NewServices(cfg *config.Config, db *database.DB, publisher notifications.Publisher) (*Services, error) {
	rule, err := events.RuleByName(cfg.Events.OverlapRule)
	if err != nil {
		return nil, err
	}

	pg := db.GetPostgreSQL()
	tx := database.NewTransactor(pg)
	clk := clock.NewSystem()
	cacheService := cache.NewService(db.GetRedis())

	venueRepo := venues.NewRepository(pg)
	areaRepo := areas.NewRepository(pg)
	eventRepo := events.NewRepository(pg)
	eventAreaRepo := eventareas.NewRepository(pg)
	userRepo := users.NewRepository(pg)
	ticketRepo := tickets.NewRepository(pg)

	manager := inventory.NewManager(tx, inventory.Repositories{
		Venues:     venueRepo,
		Areas:      areaRepo,
		Events:     eventRepo,
		EventAreas: eventAreaRepo,
	})

	eventService := events.NewService(eventRepo, tx, venueRepo, eventAreaRepo, manager, events.Options{
		Rule:  rule,
		Clock: clk,
		Cache: cacheService,
	})

	return &Services{
		Inventory:  manager,
		Venues:     venues.NewService(venueRepo, manager, cacheService),
		Areas:      areas.NewService(areaRepo, venueRepo, manager),
		Events:     eventService,
		EventAreas: eventareas.NewService(eventAreaRepo, tx, eventRepo, manager),
		Users:      users.NewService(userRepo),
		Tickets:    tickets.NewService(ticketRepo, tx, eventAreaRepo, userRepo, notifications.NewNotifier(publisher, clk)),
		Importer:   eventimport.NewImporter(eventService),
		Clock:      clk,
	}, nil
}

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	services *Services
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, services *Services) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		services: services,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	auth := middleware.JWTAuthWithConfig(r.config)
	optionalAuth := middleware.OptionalAuthWithConfig(r.config)
	s := r.services

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Template hierarchy
		venues.SetupVenueRoutes(api, venues.NewController(s.Venues), auth)
		areas.SetupAreaRoutes(api, areas.NewController(s.Areas), auth)

		// Event catalog and live inventory
		events.SetupEventRoutes(api, events.NewController(s.Events, s.Clock), auth, optionalAuth)
		eventareas.SetupEventAreaRoutes(api, eventareas.NewController(s.EventAreas), auth)
		eventimport.SetupImportRoutes(api, eventimport.NewController(s.Importer), auth)

		// Customers
		users.SetupUserRoutes(api, users.NewController(s.Users), auth)
		tickets.SetupTicketRoutes(api, tickets.NewController(s.Tickets), auth)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "ticketeer",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "ticketeer",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"overlap":     r.config.Events.OverlapRule,
			"timestamp":   time.Now(),
		})
	})
}
