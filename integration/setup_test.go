package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsleyh/pg-filters/filter"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	_ "github.com/lib/pq"
)

// setupPQ returns a database/sql handle on a fresh database, through lib/pq.
func setupPQ(t *testing.T) *sql.DB {
	t.Helper()

	var db *sql.DB
	setupDatabase(t, func(dsn string) error {
		if db == nil {
			var err error
			if db, err = sql.Open("postgres", dsn); err != nil {
				return err
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()
		return db.PingContext(ctx)
	})
	t.Cleanup(func() {
		db.Close() //nolint:errcheck
	})

	return db
}

// setupPGX returns a pgx pool on a fresh database.
func setupPGX(t *testing.T) *pgxpool.Pool {
	t.Helper()

	var db *pgxpool.Pool
	setupDatabase(t, func(dsn string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
		defer cancel()
		if db == nil {
			var err error
			if db, err = pgxpool.New(ctx, dsn); err != nil {
				return err
			}
		}
		return db.Ping(ctx)
	})
	t.Cleanup(db.Close)

	return db
}

// postgres is the container every test database runs in. The session time
// zone is pinned so DATE_ONLY bounds match the stored timestamps.
var postgres = &dockertest.RunOptions{
	Repository: "postgres",
	Tag:        "16-alpine",
	Env: []string{
		"POSTGRES_PASSWORD=test",
		"POSTGRES_USER=test",
		"POSTGRES_DB=test",
		"TZ=UTC",
		"PGTZ=UTC",
	},
	Cmd: []string{"postgres", "-c", "fsync=off", "-c", "full_page_writes=off"},
}

// setupDatabase starts a fresh PostgreSQL container and calls connect with its
// DSN until it succeeds. The container is purged when the test ends.
func setupDatabase(t *testing.T, connect func(dsn string) error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Fatalf("Could not connect to Docker: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(postgres, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("Could not start resource: %s", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("Could not purge resource: %s", err)
		}
	})
	resource.Expire(180) //nolint:errcheck

	dsn := fmt.Sprintf("postgres://test:test@%s/test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	if err := pool.Retry(func() error { return connect(dsn) }); err != nil {
		t.Fatalf("Could not connect to postgres: %s", err)
	}
}

// createPlayersTable create a players table with 10 players.
func createPlayersTable(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec(playersDDL); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(playersData); err != nil {
		t.Fatal(err)
	}
}

func createPlayersTablePGX(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	if _, err := db.Exec(ctx, playersDDL); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(ctx, playersData); err != nil {
		t.Fatal(err)
	}
}

// players describes the columns of the players table.
var players = filter.Registry{
	"id":        filter.Integer,
	"name":      filter.Text,
	"class":     filter.Varchar,
	"level":     filter.Integer,
	"gold":      filter.DoublePrecision,
	"active":    filter.Boolean,
	"items":     filter.TextArray,
	"joined_at": filter.TimestampTz,
	"guild":     filter.Uuid,
}

const playersDDL = `
	CREATE TABLE players (
		"id" serial PRIMARY KEY,
		"name" text,
		"class" varchar(20),
		"level" int,
		"gold" double precision,
		"active" boolean,
		"items" text[],
		"joined_at" timestamptz,
		"guild" uuid
	);
`

const playersData = `
	INSERT INTO players
		("id", "name",    "class",   "level", "gold",  "active", "items",              "joined_at",              "guild") VALUES
		(1,    'Alice',   'Warrior', 10,      10.5,    true,     '{}',                 '2024-01-01 10:00:00+00', 'a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11'),
		(2,    'Bob',     'mage',    20,      0,       true,     '{"staff"}',          '2024-01-15 23:59:59+00', 'a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11'),
		(3,    'Charlie', 'rogue',   30,      99.99,   false,    '{"dagger"}',         '2024-02-01 00:00:00+00', 'b1ffcd88-8d1a-4ef9-ac7e-7cc8ce491b22'),
		(4,    'David',   'warrior', 40,      250,     true,     '{"sword", "shield"}','2024-02-14 12:00:00+00', NULL),
		(5,    'Eve',     'MAGE',    50,      1000,    false,    '{"staff", "cloak"}', '2024-03-01 08:30:00+00', 'b1ffcd88-8d1a-4ef9-ac7e-7cc8ce491b22'),
		(6,    'Frank',   'rogue',   60,      12.25,   true,     '{"dagger"}',         '2024-03-31 18:00:00+00', NULL),
		(7,    'Grace',   'warrior', 70,      7,       true,     '{"sword"}',          '2024-04-10 09:00:00+00', 'a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11'),
		(8,    'Hank',    'mage',    80,      3.5,     false,    '{}',                 '2024-05-05 05:05:05+00', NULL),
		(9,    'Ivy',     'rogue',   90,      42,      true,     '{"cloak"}',          NULL,                     NULL),
		(10,   'Jack',    'warrior', 100,     NULL,    true,     '{"shield"}',         '2025-01-01 00:00:00+00', 'b1ffcd88-8d1a-4ef9-ac7e-7cc8ce491b22');
`
