package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"car-inventory-backend/internal/config"
	catalogRepository "car-inventory-backend/internal/domains/catalog/repository"
	infraCache "car-inventory-backend/internal/infrastructure/cache"
	"car-inventory-backend/internal/infrastructure/database"
)

// Seeds the catalog (makes, models, features) and a handful of sample
// car details. Fixed ids + ON CONFLICT DO NOTHING keep it idempotent.

type seedMake struct {
	id   uuid.UUID
	name string
}

type seedModel struct {
	id     uuid.UUID
	makeID uuid.UUID
	name   string
}

type seedFeature struct {
	id   uuid.UUID
	name string
}

type seedDetail struct {
	id         uuid.UUID
	makeID     uuid.UUID
	modelID    uuid.UUID
	year       int
	featureIDs []uuid.UUID
}

var (
	toyotaID = uuid.MustParse("0c19a3e0-0001-4000-8000-000000000001")
	hondaID  = uuid.MustParse("0c19a3e0-0001-4000-8000-000000000002")
	fordID   = uuid.MustParse("0c19a3e0-0001-4000-8000-000000000003")
	bmwID    = uuid.MustParse("0c19a3e0-0001-4000-8000-000000000004")

	camryID   = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000001")
	corollaID = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000002")
	civicID   = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000003")
	accordID  = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000004")
	f150ID    = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000005")
	m3ID      = uuid.MustParse("0c19a3e0-0002-4000-8000-000000000006")

	sunroofID    = uuid.MustParse("0c19a3e0-0003-4000-8000-000000000001")
	leatherID    = uuid.MustParse("0c19a3e0-0003-4000-8000-000000000002")
	navigationID = uuid.MustParse("0c19a3e0-0003-4000-8000-000000000003")
	heatedID     = uuid.MustParse("0c19a3e0-0003-4000-8000-000000000004")
	backupCamID  = uuid.MustParse("0c19a3e0-0003-4000-8000-000000000005")
)

var makes = []seedMake{
	{toyotaID, "Toyota"},
	{hondaID, "Honda"},
	{fordID, "Ford"},
	{bmwID, "BMW"},
}

var models = []seedModel{
	{camryID, toyotaID, "Camry"},
	{corollaID, toyotaID, "Corolla"},
	{civicID, hondaID, "Civic"},
	{accordID, hondaID, "Accord"},
	{f150ID, fordID, "F-150"},
	{m3ID, bmwID, "M3"},
}

var features = []seedFeature{
	{sunroofID, "Sunroof"},
	{leatherID, "Leather Seats"},
	{navigationID, "Navigation"},
	{heatedID, "Heated Seats"},
	{backupCamID, "Backup Camera"},
}

var details = []seedDetail{
	{
		id:         uuid.MustParse("0c19a3e0-0004-4000-8000-000000000001"),
		makeID:     toyotaID,
		modelID:    camryID,
		year:       2020,
		featureIDs: []uuid.UUID{sunroofID, backupCamID},
	},
	{
		id:         uuid.MustParse("0c19a3e0-0004-4000-8000-000000000002"),
		makeID:     hondaID,
		modelID:    civicID,
		year:       2018,
		featureIDs: []uuid.UUID{heatedID},
	},
	{
		id:         uuid.MustParse("0c19a3e0-0004-4000-8000-000000000003"),
		makeID:     fordID,
		modelID:    f150ID,
		year:       2022,
		featureIDs: []uuid.UUID{navigationID, leatherID, backupCamID},
	},
	{
		id:      uuid.MustParse("0c19a3e0-0004-4000-8000-000000000004"),
		makeID:  bmwID,
		modelID: m3ID,
		year:    2015,
	},
}

func main() {
	schemaPath := flag.String("schema", "migrations/001_init.sql", "path to the schema file (empty to skip)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *schemaPath != "" {
		schema, err := os.ReadFile(*schemaPath)
		if err != nil {
			log.Fatalf("❌ Failed to read schema file: %v", err)
		}
		if _, err := db.Pool.Exec(ctx, string(schema)); err != nil {
			log.Fatalf("❌ Failed to apply schema: %v", err)
		}
		log.Println("✅ Schema applied")
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Drop stale catalog lists so the API serves the fresh data.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	catalogRepo := catalogRepository.NewPostgresRepository(db.Pool, redisCache)
	if err := catalogRepo.InvalidateLists(ctx); err != nil {
		log.Printf("⚠️  Failed to invalidate catalog cache: %v", err)
	}

	log.Println("✅ Seeding complete")
}

func seed(ctx context.Context, db *database.PostgresDB) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range makes {
		if _, err := tx.Exec(ctx,
			`INSERT INTO car_makes (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			m.id, m.name); err != nil {
			return err
		}
	}

	for _, m := range models {
		if _, err := tx.Exec(ctx,
			`INSERT INTO car_models (id, car_make_id, name) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			m.id, m.makeID, m.name); err != nil {
			return err
		}
	}

	for _, f := range features {
		if _, err := tx.Exec(ctx,
			`INSERT INTO car_features (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			f.id, f.name); err != nil {
			return err
		}
	}

	for _, d := range details {
		if _, err := tx.Exec(ctx,
			`INSERT INTO car_details (id, car_make_id, car_model_id, year) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			d.id, d.makeID, d.modelID, d.year); err != nil {
			return err
		}
		for _, featureID := range d.featureIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO car_detail_features (car_detail_id, car_feature_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				d.id, featureID); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
