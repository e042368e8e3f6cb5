package migrate

import (
	"context"
	"fmt"

	"github.com/metalldk/storefront/pkg/config"
	"github.com/metalldk/storefront/pkg/db"
	"github.com/metalldk/storefront/pkg/logger"
)

// MaybeAutoRun applies pending migrations when the DB auto-migrate flag is enabled.
func MaybeAutoRun(ctx context.Context, cfg config.DBConfig, logg *logger.Logger, client *db.Client) error {
	if !cfg.AutoMigrate || client == nil {
		return nil
	}

	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"driver": client.Driver(), "dir": DefaultDir})
		logg.Debug(ctx, "running goose migrations (auto-run)")
	}

	if err := Up(ctx, sqlDB, client.Driver()); err != nil {
		return err
	}
	return nil
}
