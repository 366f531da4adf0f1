package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.DatabaseConfig{
				Driver:   "mysql",
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "collection",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/collection?parseTime=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
			},
			expected: "root:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "DSN with TLS disabled",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "collection",
				TLS:      "disable",
			},
			expected: "root:secret@tcp(localhost:3306)/collection?parseTime=true&tls=false",
		},
		{
			name: "DSN with TLS required and custom port",
			cfg: &config.DatabaseConfig{
				Host:     "remote-host",
				Port:     3307,
				User:     "admin",
				Password: "p@ssw0rd!",
				Database: "mydb",
				TLS:      "required",
			},
			expected: "admin:p@ssw0rd!@tcp(remote-host:3307)/mydb?parseTime=true&tls=true",
		},
		{
			name: "sqlite file",
			cfg: &config.DatabaseConfig{
				Driver: "sqlite",
				Path:   "/var/lib/pokedex.db",
			},
			expected: "file:/var/lib/pokedex.db?mode=ro",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildDSN(tt.cfg)
			if result != tt.expected {
				t.Errorf("BuildDSN() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
		wantErr  bool
	}{
		{"mysql", "mysql", false},
		{"", "mysql", false},
		{"sqlite", "sqlite", false},
		{"postgres", "", true},
	}

	for _, tt := range tests {
		got, err := DriverName(&config.DatabaseConfig{Driver: tt.driver})
		if (err != nil) != tt.wantErr {
			t.Errorf("DriverName(%q) error = %v, wantErr %v", tt.driver, err, tt.wantErr)
		}
		if got != tt.expected {
			t.Errorf("DriverName(%q) = %q, expected %q", tt.driver, got, tt.expected)
		}
	}
}

func TestNewManager(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "mysql", Host: "localhost"}

	manager := NewManager(cfg)
	if manager == nil {
		t.Fatal("NewManager() returned nil")
	}
	if manager.config != cfg {
		t.Error("manager.config should point to provided config")
	}
	if manager.DB != nil {
		t.Error("DB should be nil before Connect()")
	}
}

func TestManagerCloseWithoutConnect(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: "mysql"})

	if err := manager.Close(); err != nil {
		t.Errorf("Close() returned error for unconnected manager: %v", err)
	}
}

func TestManagerPingWithoutConnect(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: "mysql"})

	if err := manager.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail before Connect()")
	}
}

func TestConnectNilConfig(t *testing.T) {
	manager := NewManager(nil)
	if err := manager.Connect(context.Background()); err == nil {
		t.Error("Connect() should fail with nil config")
	}
}

func TestConnectSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokedex.db")

	// Create the file read-write; the manager opens it read-only.
	seed, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	if _, err := seed.Exec("CREATE TABLE pokedex (id INTEGER, name TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	_ = seed.Close()

	manager := NewManager(&config.DatabaseConfig{Driver: "sqlite", Path: path})
	ctx := context.Background()

	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer manager.Close()

	if err := manager.Ping(ctx); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}
}

func TestConnectRetriesUntilContextCancelled(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{
		Driver:   "mysql",
		Host:     "127.0.0.1",
		Port:     1,
		User:     "nobody",
		Database: "none",
		TLS:      "disable",
	})
	manager.backoff = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := manager.Connect(ctx)
	if err == nil {
		t.Fatal("Connect() should fail against a closed port")
	}
	if !strings.Contains(err.Error(), "mysql") {
		t.Errorf("expected error to name the driver, got: %v", err)
	}
}

func TestConnectUnsupportedDriver(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: "oracle"})
	manager.maxRetries = 1

	if err := manager.Connect(context.Background()); err == nil {
		t.Error("Connect() should fail for unsupported driver")
	}
}
