// Package integration runs the TokenEstate repositories and services against
// a real PostgreSQL started with testcontainers.
package integration

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tokenestate/backend/internal/domain/identity"
	"github.com/tokenestate/backend/internal/domain/property"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/migration"
	"github.com/tokenestate/backend/internal/infrastructure/persistence"
	"github.com/tokenestate/backend/migrations"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	sharedContainer    testcontainers.Container
	sharedContainerMu  sync.Mutex
	sharedContainerDSN string
)

// TestDB is a migrated PostgreSQL database
type TestDB struct {
	DB        *gorm.DB
	SqlDB     *sql.DB
	Container testcontainers.Container
	DSN       string
	t         *testing.T
}

func runPostgres(ctx context.Context, t *testing.T, database string) (testcontainers.Container, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker; skipped with -short")
	}

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "postgres connection string")
	return container, dsn
}

// NewTestDB starts a dedicated container, so the test owns the whole schema
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()
	container, dsn := runPostgres(ctx, t, "tokenestate_test")

	db, sqlDB := connectToDatabase(t, dsn)
	runMigrations(t, sqlDB)

	tdb := &TestDB{DB: db, SqlDB: sqlDB, Container: container, DSN: dsn, t: t}
	t.Cleanup(tdb.Close)
	return tdb
}

// NewSharedTestDB reuses one container per package. Tests sharing it must
// create their own rows and not depend on table counts.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()

	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer == nil {
		container, dsn := runPostgres(context.Background(), t, "tokenestate_shared")
		_, sqlDB := connectToDatabase(t, dsn)
		runMigrations(t, sqlDB)
		_ = sqlDB.Close()
		sharedContainer = container
		sharedContainerDSN = dsn
	}

	db, sqlDB := connectToDatabase(t, sharedContainerDSN)
	tdb := &TestDB{DB: db, SqlDB: sqlDB, Container: sharedContainer, DSN: sharedContainerDSN, t: t}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return tdb
}

// Close closes the connection and terminates a dedicated container
func (tdb *TestDB) Close() {
	if tdb.SqlDB != nil {
		_ = tdb.SqlDB.Close()
	}
	if tdb.Container != nil && tdb.Container != sharedContainer {
		if err := tdb.Container.Terminate(context.Background()); err != nil {
			tdb.t.Logf("terminate container: %v", err)
		}
	}
}

// CleanTables truncates every table except the migration bookkeeping
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	err := tdb.DB.Raw(`
		SELECT tablename FROM pg_tables
		WHERE schemaname = 'public'
		AND tablename != 'schema_migrations'
	`).Scan(&tables).Error
	require.NoError(tdb.t, err, "list tables")

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q CASCADE", table)).Error; err != nil {
			tdb.t.Logf("truncate %s: %v", table, err)
		}
	}
}

// CreateUser registers a user, promoting it when admin is set
func (tdb *TestDB) CreateUser(email string, admin bool) *identity.User {
	tdb.t.Helper()

	u, err := identity.NewUser(email, "Password123", "Test "+email)
	require.NoError(tdb.t, err)
	if admin {
		u.PromoteToAdmin()
	}
	u.ClearDomainEvents()
	require.NoError(tdb.t, persistence.NewGormUserRepository(tdb.DB).Save(context.Background(), u))
	return u
}

// CreateOpenProperty stores a published property ready for investment
func (tdb *TestDB) CreateOpenProperty(name string, totalTokens int64, price string) *property.Property {
	tdb.t.Helper()

	p, err := property.NewProperty(name, "Lisbon, PT", property.PropertyTypeResidential, totalTokens,
		valueobject.USDAmount(decimal.RequireFromString(price)), decimal.NewFromInt(6))
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, p.Publish())
	p.ClearDomainEvents()
	require.NoError(tdb.t, persistence.NewGormPropertyRepository(tdb.DB).Save(context.Background(), p))
	return p
}

func connectToDatabase(t *testing.T, dsn string) (*gorm.DB, *sql.DB) {
	t.Helper()

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if os.Getenv("TEST_DB_DEBUG") != "" {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), cfg)
	require.NoError(t, err, "connect to database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, sqlDB
}

// runMigrations applies the embedded schema the server migrates with
func runMigrations(t *testing.T, sqlDB *sql.DB) {
	t.Helper()

	m, err := migration.NewFromFS(sqlDB, migrations.FS, nil)
	require.NoError(t, err, "create migrator")
	require.NoError(t, m.Up(), "apply migrations")
}

// CleanupSharedContainer terminates the shared container; call from TestMain
func CleanupSharedContainer() {
	sharedContainerMu.Lock()
	defer sharedContainerMu.Unlock()

	if sharedContainer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_ = sharedContainer.Terminate(ctx)
		sharedContainer = nil
		sharedContainerDSN = ""
	}
}
