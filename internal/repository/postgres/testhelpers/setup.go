package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// TestDB - подключение к тестовой базе
type TestDB struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB подключается к тестовой базе; без доступной базы с PostGIS
// интеграционные тесты пропускаются
func SetupTestDB(t *testing.T) *TestDB {
	host := getEnv("TEST_DB_HOST", "localhost")
	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "bikeroute_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sqlx.Connect("pgx", connStr)
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}

	var version string
	if err := db.Get(&version, "SELECT PostGIS_Version()"); err != nil {
		db.Close()
		t.Skipf("PostGIS not available: %v", err)
	}
	t.Logf("PostGIS version: %s", version)

	return &TestDB{
		DB:     db,
		Logger: zap.NewNop(),
	}
}

// Close закрывает подключение
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
}

// CreateStationsTable создаёт схему инвентаря станций
func (tdb *TestDB) CreateStationsTable(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS stations (
			number        INTEGER PRIMARY KEY,
			name          TEXT NOT NULL,
			lat           DOUBLE PRECISION NOT NULL,
			lon           DOUBLE PRECISION NOT NULL,
			current_bikes INTEGER NOT NULL DEFAULT 0,
			status        TEXT NOT NULL DEFAULT 'available',
			geometry      geometry(Point, 4326)
		)
	`
	_, err := tdb.DB.ExecContext(ctx, ddl)
	return err
}

// InsertStation добавляет станцию вместе с её геометрией
func (tdb *TestDB) InsertStation(ctx context.Context, number int, name string, lat, lon float64, bikes int, status string) error {
	_, err := tdb.DB.ExecContext(ctx, `
		INSERT INTO stations (number, name, lat, lon, current_bikes, status, geometry)
		VALUES ($1, $2, $3, $4, $5, $6, ST_SetSRID(ST_MakePoint($4, $3), 4326))
	`, number, name, lat, lon, bikes, status)
	return err
}

// Cleanup очищает тестовые данные
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	_, err := tdb.DB.ExecContext(ctx, "TRUNCATE TABLE stations")
	return err
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
