package main

import (
	"fmt"
	"log"

	"glowbook/internal/locations"
	"glowbook/internal/packages"
	"glowbook/internal/shared/config"
	"glowbook/internal/shared/database"
	"glowbook/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting GlowBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting
// foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"calendar_slots",
		"bookings",
		"booking_counters",
		"service_packages",
		"transport_locations",
		"users",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll populates the catalog data a fresh deployment needs.
func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	if err := s.seedPackages(); err != nil {
		return err
	}
	return s.seedLocations()
}

func (s *Seeder) seedUsers() error {
	seedUsers := []users.User{
		{
			FirstName: "Studio",
			LastName:  "Admin",
			Email:     "admin@glowbook.local",
			Phone:     "+10000000000",
			Role:      users.RoleAdmin,
		},
		{
			FirstName: "Test",
			LastName:  "Customer",
			Email:     "customer@glowbook.local",
			Phone:     "+10000000001",
			Role:      users.RoleUser,
		},
	}

	for i := range seedUsers {
		if err := s.db.PostgreSQL.Create(&seedUsers[i]).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", seedUsers[i].Email, err)
		}
	}

	fmt.Printf("   👤 Seeded %d users\n", len(seedUsers))
	return nil
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func (s *Seeder) seedPackages() error {
	seedPackages := []packages.ServicePackage{
		{
			Name:            "Bridal Deluxe",
			Description:     "Full bridal party styling with trial session",
			PackageType:     packages.TypeBridalLarge,
			BridePrice:      fptr(3000),
			MaidPrice:       fptr(1500),
			MotherPrice:     fptr(1800),
			MinMaids:        iptr(2),
			MaxMaids:        iptr(8),
			DurationMinutes: iptr(360),
			IsActive:        true,
		},
		{
			Name:            "Bridal Intimate",
			Description:     "Bride plus a small party",
			PackageType:     packages.TypeBridalSmall,
			BridePrice:      fptr(2500),
			MaidPrice:       fptr(1400),
			MaxMaids:        iptr(3),
			DurationMinutes: iptr(240),
			IsActive:        true,
		},
		{
			Name:            "Bride Only",
			Description:     "Bridal styling, no party",
			PackageType:     packages.TypeBrideOnly,
			BridePrice:      fptr(2200),
			DurationMinutes: iptr(150),
			IsActive:        true,
		},
		{
			Name:            "Evening Glam",
			Description:     "Event styling for any occasion",
			PackageType:     packages.TypeRegular,
			OtherPrice:      fptr(900),
			DurationMinutes: iptr(90),
			IsActive:        true,
		},
		{
			Name:            "Self-Styling Class",
			Description:     "Two hour hands-on styling workshop",
			PackageType:     packages.TypeClasses,
			OtherPrice:      fptr(450),
			DurationMinutes: iptr(120),
			IsActive:        true,
		},
	}

	for i := range seedPackages {
		if err := s.db.PostgreSQL.Create(&seedPackages[i]).Error; err != nil {
			return fmt.Errorf("failed to seed package %s: %w", seedPackages[i].Name, err)
		}
	}

	fmt.Printf("   💄 Seeded %d packages\n", len(seedPackages))
	return nil
}

func (s *Seeder) seedLocations() error {
	seedLocations := []locations.TransportLocation{
		{Name: "In Studio", TransportCost: 0, IsFree: true, IsActive: true},
		{Name: "City Centre", TransportCost: 300, IsActive: true},
		{Name: "Northside", TransportCost: 800, IsActive: true},
		{Name: "Airport District", TransportCost: 1200, IsActive: true},
	}

	for i := range seedLocations {
		if err := s.db.PostgreSQL.Create(&seedLocations[i]).Error; err != nil {
			return fmt.Errorf("failed to seed location %s: %w", seedLocations[i].Name, err)
		}
	}

	fmt.Printf("   🚗 Seeded %d transport locations\n", len(seedLocations))
	return nil
}
