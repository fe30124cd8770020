//go:build integration

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_adlab/internal/catalog"
	"hotel_adlab/internal/domain"
	mysqlrepo "hotel_adlab/internal/storage/mysql"
)

// migrationsDir defaults to the repo's migrations/ folder.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startMySQL runs an isolated MySQL; Docker picks a free host port.
func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=adlab",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "adlab")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestRepo_MySQL_CatalogAndAuditLog(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange: seed in reverse to prove ListHotels orders by id
	for i := len(catalog.Seed) - 1; i >= 0; i-- {
		if err := repo.UpsertHotel(ctx, catalog.Seed[i]); err != nil {
			t.Fatalf("UpsertHotel: %v", err)
		}
	}
	// upsert is idempotent and updates in place
	changed := catalog.Seed[2]
	changed.Price = 129
	if err := repo.UpsertHotel(ctx, changed); err != nil {
		t.Fatalf("UpsertHotel (update): %v", err)
	}

	// the store built from MySQL matches the seed apart from the change
	st, err := catalog.Load(ctx, repo)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	if st.Len() != len(catalog.Seed) {
		t.Fatalf("expected %d hotels, got %d", len(catalog.Seed), st.Len())
	}
	for i, h := range st.All() {
		if h.ID != catalog.Seed[i].ID {
			t.Fatalf("order: position %d has id %d", i, h.ID)
		}
	}
	h3, _ := st.ByID(3)
	if h3.Price != 129 || h3.Name != catalog.Seed[2].Name {
		t.Fatalf("unexpected hotel 3: %+v", h3)
	}

	// audit log round trip
	id := int64(2)
	entries := []domain.RecommendationLogEntry{
		{
			SessionID: "11111111-1111-1111-1111-111111111111", Model: domain.ModelGeminiFlash,
			PromptHash: "abc", Filters: domain.DefaultCriteria().Key(), Phase: domain.PhaseSucceeded,
			HotelID: &id, Reasoning: "romantic luxury", Latency: 1500 * time.Millisecond,
			CreatedAt: time.Now().UTC().Add(-time.Second),
		},
		{
			SessionID: "11111111-1111-1111-1111-111111111111", Model: domain.ModelGPT4o,
			PromptHash: "abc", Filters: domain.DefaultCriteria().Key(), Phase: domain.PhaseRejected,
			Raw: "not json", Error: "AI response is not valid JSON",
			CreatedAt: time.Now().UTC(),
		},
	}
	for _, e := range entries {
		if err := repo.LogRecommendation(ctx, e); err != nil {
			t.Fatalf("LogRecommendation: %v", err)
		}
	}

	got, err := repo.ListRecommendations(ctx, entries[0].SessionID)
	if err != nil {
		t.Fatalf("ListRecommendations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].HotelID == nil || *got[0].HotelID != 2 || got[0].Latency != 1500*time.Millisecond {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].HotelID != nil || got[1].Raw != "not json" || got[1].Phase != domain.PhaseRejected {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
}

func TestRepo_MySQL_RejectsInvalidHotel(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)

	bad := domain.HotelRecord{ID: 9, Name: "", Price: 100, Rating: 4, Type: domain.TypeBudget}
	if err := repo.UpsertHotel(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
}
