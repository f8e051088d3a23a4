package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookwell/appointment-backend/internal/db"
)

// Every seeded account uses the same password so the simulator and manual
// testing can log in without extra bookkeeping.
const seedPassword = "password123"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	providerIDs, err := seedUsers(context.Background(), pool, string(hash))
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	serviceIDs, err := seedServices(context.Background(), pool)
	if err != nil {
		log.Fatalf("seed services: %v", err)
	}
	if err := seedOfferings(context.Background(), pool, providerIDs, serviceIDs); err != nil {
		log.Fatalf("seed offerings: %v", err)
	}
	if err := seedAvailabilities(context.Background(), pool, providerIDs); err != nil {
		log.Fatalf("seed availabilities: %v", err)
	}

	log.Println("seed complete")
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, passwordHash string) ([]uuid.UUID, error) {
	const providerCount = 20
	const clientCount = 500

	log.Printf("seeding 1 admin, %d providers, %d clients", providerCount, clientCount)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO users (id, email, password_hash, full_name, role, is_active, is_superuser, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, now())
	`

	_, err = tx.Exec(ctx, insert,
		uuid.New(), "admin@bookwell.dev", passwordHash, "Seed Admin", "admin", true)
	if err != nil {
		return nil, err
	}

	providerIDs := make([]uuid.UUID, 0, providerCount)
	for i := 0; i < providerCount; i++ {
		id := uuid.New()
		providerIDs = append(providerIDs, id)

		_, err := tx.Exec(ctx, insert,
			id, strings.ToLower(gofakeit.Email()), passwordHash, gofakeit.Name(), "provider", false)
		if err != nil {
			return nil, err
		}
	}

	for i := 0; i < clientCount; i++ {
		_, err := tx.Exec(ctx, insert,
			uuid.New(), strings.ToLower(gofakeit.Email()), passwordHash, gofakeit.Name(), "client", false)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("users seeded")
	return providerIDs, nil
}

func seedServices(ctx context.Context, pool *pgxpool.Pool) ([]uuid.UUID, error) {
	names := []string{
		"Initial Consultation",
		"Follow-up Visit",
		"Dental Cleaning",
		"Physiotherapy Session",
		"Eye Examination",
		"Skin Screening",
		"Nutrition Counseling",
		"Massage Therapy",
	}

	log.Printf("seeding %d services", len(names))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		id := uuid.New()
		ids = append(ids, id)

		_, err := tx.Exec(ctx, `
			INSERT INTO services (id, name, description, is_active, created_at)
			VALUES ($1, $2, $3, TRUE, now())
		`, id, name, gofakeit.Sentence(8))
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("services seeded")
	return ids, nil
}

func seedOfferings(ctx context.Context, pool *pgxpool.Pool, providerIDs, serviceIDs []uuid.UUID) error {
	log.Println("seeding offerings")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Each provider offers between 2 and 4 distinct services.
	for _, providerID := range providerIDs {
		count := gofakeit.Number(2, 4)
		perm := intRange(len(serviceIDs))
		gofakeit.ShuffleInts(perm)

		for i := 0; i < count && i < len(perm); i++ {
			_, err := tx.Exec(ctx, `
				INSERT INTO provider_services (id, provider_id, service_id, price, duration_minutes, is_active, created_at)
				VALUES ($1, $2, $3, $4, $5, TRUE, now())
			`, uuid.New(), providerID, serviceIDs[perm[i]],
				gofakeit.Number(2000, 25000), gofakeit.Number(2, 8)*15)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("offerings seeded")
	return nil
}

func seedAvailabilities(ctx context.Context, pool *pgxpool.Pool, providerIDs []uuid.UUID) error {
	log.Println("seeding availabilities")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Two weeks of 9-to-17 weekday windows per provider, starting tomorrow.
	day := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for _, providerID := range providerIDs {
		for d := 0; d < 14; d++ {
			date := day.Add(time.Duration(d) * 24 * time.Hour)
			if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}

			start := date.Add(9 * time.Hour)
			end := date.Add(17 * time.Hour)

			_, err := tx.Exec(ctx, `
				INSERT INTO availabilities (id, provider_id, start_time, end_time, is_available, created_at)
				VALUES ($1, $2, $3, $4, TRUE, now())
			`, uuid.New(), providerID, start, end)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("availabilities seeded")
	return nil
}

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
