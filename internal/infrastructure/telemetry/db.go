package telemetry

import (
	"fmt"

	"github.com/tokenestate/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentDB registers the otelgorm plugin so every query becomes a span.
// Query variables are left out of spans unless DBLogFullSQL is set.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, dbName string, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(dbName)}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	if logger != nil {
		logger.Info("Database tracing enabled",
			zap.String("db_name", dbName),
			zap.Bool("full_sql", cfg.DBLogFullSQL))
	}
	return nil
}
