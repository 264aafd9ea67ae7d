package database

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"budgethub/internal/config"
	"budgethub/internal/logger"
	"budgethub/internal/models"
)

func init() {
	logger.Init("test")
}

func TestConfig_DSN(t *testing.T) {
	pg := &Config{Driver: config.DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "hub", SSLMode: "disable"}
	if got := pg.DSN(); got != "host=db port=5432 user=u password=p dbname=hub sslmode=disable" {
		t.Errorf("unexpected postgres DSN %q", got)
	}
	if got := pg.MigrationURL(); got != "postgres://u:p@db:5432/hub?sslmode=disable" {
		t.Errorf("unexpected postgres migration URL %q", got)
	}

	lite := &Config{Driver: config.DriverSQLite, Path: "data/hub.db"}
	if !strings.Contains(lite.DSN(), "_foreign_keys=on") {
		t.Errorf("sqlite DSN should enable foreign keys: %q", lite.DSN())
	}
	if got := lite.MigrationURL(); !strings.HasPrefix(got, "sqlite3://data/hub.db") {
		t.Errorf("unexpected sqlite migration URL %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"ERROR":  gormlogger.Error,
		"info":   gormlogger.Info,
		"warn":   gormlogger.Warn,
		"":       gormlogger.Warn,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core).Sugar(), gormlogger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sql, nil)
	if logs.Len() != 0 {
		t.Errorf("fast successful queries should not be logged at warn level, got %d entries", logs.Len())
	}

	l.Trace(ctx, time.Now(), sql, gorm.ErrRecordNotFound)
	if logs.Len() != 0 {
		t.Error("record not found should not be logged as an error")
	}

	l.Trace(ctx, time.Now(), sql, errors.New("syntax error"))
	if logs.FilterMessage("query failed").Len() != 1 {
		t.Error("expected failed query to be logged")
	}

	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	if logs.FilterMessage("slow query").Len() != 1 {
		t.Error("expected slow query warning")
	}
}

// TestManager_SQLiteMigrations applies the embedded SQLite migrations to a
// fresh file and checks the schema constraints the ledger relies on.
func TestManager_SQLiteMigrations(t *testing.T) {
	cfg := &Config{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "nested", "hub.db"),
		LogLevel: "silent",
	}

	manager, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	defer manager.Close()

	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	// A second run is a no-op.
	if err := manager.RunMigrations(); err != nil {
		t.Fatalf("second RunMigrations failed: %v", err)
	}

	db := manager.DB()
	category := &models.SavingsCategory{
		Name:         "Laptop",
		Icon:         models.DefaultCategoryIcon,
		Color:        models.DefaultCategoryColor,
		TargetAmount: decimal.NewFromInt(1000),
		Priority:     models.PriorityMedium,
		IsActive:     true,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("insert category failed: %v", err)
	}

	negative := db.Model(category).Update("current_amount", decimal.NewFromInt(-1))
	if negative.Error == nil {
		t.Error("expected the balance check constraint to reject a negative balance")
	}

	orphan := &models.SavingsTransaction{CategoryID: 9999, Amount: decimal.NewFromInt(1), Type: models.SavingsTransactionDeposit, Source: models.SavingsSourceManual}
	if err := db.Create(orphan).Error; err == nil {
		t.Error("expected the foreign key to reject an unknown category")
	}

	entry := &models.SavingsTransaction{CategoryID: category.ID, Amount: decimal.NewFromInt(5), Type: models.SavingsTransactionDeposit, Source: models.SavingsSourceManual}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("insert transaction failed: %v", err)
	}
	if err := db.Delete(category).Error; err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	var count int64
	db.Model(&models.SavingsTransaction{}).Count(&count)
	if count != 0 {
		t.Errorf("expected transactions to cascade on delete, found %d", count)
	}

	mig, err := NewMigrate(cfg)
	if err != nil {
		t.Fatalf("NewMigrate failed: %v", err)
	}
	defer mig.Close()
	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		t.Fatalf("Version failed: %v", err)
	}
	if version != 4 || dirty {
		t.Errorf("expected clean version 4, got %d (dirty=%v)", version, dirty)
	}
}
