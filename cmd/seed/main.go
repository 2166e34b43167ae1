package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"ticketeer/api/routes"
	"ticketeer/internal/areas"
	"ticketeer/internal/events"
	"ticketeer/internal/notifications"
	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/database"
	"ticketeer/internal/users"
	"ticketeer/internal/venues"

	"github.com/joho/godotenv"
)

type Seeder struct {
	db       *database.DB
	services *routes.Services
}

func main() {
	fmt.Println("Starting ticketeer database seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg, routes.Models()...)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	services, err := routes.NewServices(cfg, db, notifications.NoopPublisher{})
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}
	seeder := &Seeder{db: db, services: services}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates every table, children first.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"event_seats",
		"event_areas",
		"events",
		"seats",
		"areas",
		"layouts",
		"venues",
		"users",
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll goes through the services so every seeded row passes the same
// validation as API traffic, and events come out materialized.
func (s *Seeder) SeedAll(ctx context.Context) error {
	if err := s.SeedUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	layoutIDs, err := s.SeedVenues(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	if err := s.SeedEvents(ctx, layoutIDs); err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}
	return nil
}

// SeedUsers opens ledger rows for the identities the dev token issuer hands
// out (ids 1 to 3).
func (s *Seeder) SeedUsers(ctx context.Context) error {
	fmt.Println("  Seeding users...")

	usersData := []struct {
		id      int64
		email   string
		name    string
		zone    string
		deposit float64
	}{
		{1, "alice@example.com", "Alice", "Europe/Minsk", 200},
		{2, "bob@example.com", "Bob", "America/New_York", 50},
		{3, "carol@example.com", "Carol", "UTC", 0},
	}

	for _, u := range usersData {
		user, err := s.services.Users.Register(ctx, u.id, users.RegisterRequest{Email: u.email, DisplayName: u.name, TimeZone: u.zone})
		if err != nil {
			return fmt.Errorf("register %s: %w", u.email, err)
		}
		if u.deposit > 0 {
			if user, err = s.services.Users.Deposit(ctx, u.id, u.deposit); err != nil {
				return fmt.Errorf("deposit for %s: %w", u.email, err)
			}
		}
		fmt.Printf("    Created user: %s (balance %.2f)\n", user.Email, user.Balance)
	}
	return nil
}

type areaSeed struct {
	description  string
	x, y         int
	price        float64
	rows, perRow int
}

// SeedVenues builds two venues with one layout each and returns the layout ids.
func (s *Seeder) SeedVenues(ctx context.Context) ([]int64, error) {
	fmt.Println("  Seeding venues...")

	venuesData := []struct {
		name, address, description, layout string
		areas                              []areaSeed
	}{
		{
			name:        "Palace of Sports",
			address:     "4 Pobediteley Ave",
			description: "Indoor arena",
			layout:      "Concert",
			areas: []areaSeed{
				{"Parterre", 1, 1, 45, 10, 20},
				{"Balcony", 1, 2, 25, 5, 30},
			},
		},
		{
			name:        "Chamber Hall",
			address:     "12 Lenin St",
			description: "Small concert hall",
			layout:      "Recital",
			areas: []areaSeed{
				{"Stalls", 1, 1, 30, 8, 12},
			},
		},
	}

	var layoutIDs []int64
	for _, v := range venuesData {
		venue, err := s.services.Venues.CreateVenue(ctx, venues.CreateVenueRequest{
			Name: v.name, Address: v.address, Description: v.description,
		})
		if err != nil {
			return nil, err
		}
		layout, err := s.services.Venues.CreateLayout(ctx, venues.CreateLayoutRequest{
			VenueID: venue.ID, Name: v.layout, Description: v.layout + " layout",
		})
		if err != nil {
			return nil, err
		}

		seats := 0
		for _, a := range v.areas {
			n, err := s.seedArea(ctx, layout.ID, a)
			if err != nil {
				return nil, err
			}
			seats += n
		}
		layoutIDs = append(layoutIDs, layout.ID)
		fmt.Printf("    Created venue: %s, layout %s with %d seats\n", venue.Name, layout.Name, seats)
	}
	return layoutIDs, nil
}

func (s *Seeder) seedArea(ctx context.Context, layoutID int64, a areaSeed) (int, error) {
	area, err := s.services.Areas.CreateArea(ctx, areas.CreateAreaRequest{
		LayoutID: layoutID, Description: a.description, CoordX: a.x, CoordY: a.y, BasePrice: a.price,
	})
	if err != nil {
		return 0, err
	}
	for r := 1; r <= a.rows; r++ {
		for n := 1; n <= a.perRow; n++ {
			if _, err := s.services.Areas.CreateSeat(ctx, areas.CreateSeatRequest{AreaID: area.ID, Row: r, Number: n}); err != nil {
				return 0, err
			}
		}
	}
	return a.rows * a.perRow, nil
}

// SeedEvents schedules a few evenings on every layout.
func (s *Seeder) SeedEvents(ctx context.Context, layoutIDs []int64) error {
	fmt.Println("  Seeding events...")

	base := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, 14).Add(19 * time.Hour)
	names := []string{"Opening Night", "Jazz Evening", "Symphony No. 9"}

	for _, layoutID := range layoutIDs {
		for i, name := range names {
			start := base.AddDate(0, 0, 7*i)
			event, err := s.services.Events.CreateEvent(ctx, events.CreateEventRequest{
				LayoutID:    layoutID,
				Name:        name,
				Description: name + " live",
				ImageURL:    "https://images.example.com/events/default.png",
				TimeStart:   start,
				TimeEnd:     start.Add(2*time.Hour + 30*time.Minute),
			})
			if err != nil {
				return fmt.Errorf("create %s: %w", name, err)
			}
			fmt.Printf("    Created event: %s on layout %d\n", event.Name, layoutID)
		}
	}
	return nil
}
