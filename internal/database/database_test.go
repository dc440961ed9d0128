package database

import (
	"path/filepath"
	"testing"

	"finboard/internal/config"
	"finboard/internal/models"
)

func sqliteConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := NewConfig(&config.Config{
		DBDriver: DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "finboard.db"),
	})
	if err != nil {
		t.Fatalf("unexpected config error: %v", err)
	}
	return cfg
}

func TestNewConfig(t *testing.T) {
	t.Run("rejects unknown drivers", func(t *testing.T) {
		if _, err := NewConfig(&config.Config{DBDriver: "mysql"}); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("postgres URL escapes credentials", func(t *testing.T) {
		cfg, err := NewConfig(&config.Config{
			DBDriver:   DriverPostgres,
			DBHost:     "db",
			DBPort:     "5432",
			DBUser:     "finboard",
			DBPassword: "p@ss/word",
			DBName:     "finboard",
			DBSSLMode:  "disable",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "postgres://finboard:p%40ss%2Fword@db:5432/finboard?sslmode=disable"
		if got := cfg.MigrateURL(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestRunMigrations(t *testing.T) {
	m, err := NewManager(sqliteConfig(t))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer m.Close()

	if err := m.RunMigrations(); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	// A second run is a no-op.
	if err := m.RunMigrations(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for _, table := range []string{"sessions", "activity_logs"} {
		if !m.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}

	entry := models.ActivityLog{UserID: "7", Action: "create", ResourceType: "category", Changes: "{}"}
	if err := m.DB().Create(&entry).Error; err != nil {
		t.Fatalf("failed to insert into migrated table: %v", err)
	}
}
