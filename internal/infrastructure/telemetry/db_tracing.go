package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterGormTracing installs the otelgorm plugin on db so every query becomes
// a child span of the request. Query variables are never attached to spans.
func RegisterGormTracing(db *gorm.DB, s Settings, logger *zap.Logger) error {
	if !s.DBTraceEnabled {
		return nil
	}
	dbName := db.Dialector.Name()
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbName),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	logger.Info("database tracing enabled", zap.String("dialect", dbName))
	return nil
}
