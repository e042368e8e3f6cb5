package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/metalldk/storefront/pkg/config"
	"github.com/metalldk/storefront/pkg/db"
	"github.com/metalldk/storefront/pkg/enums"
	"github.com/metalldk/storefront/pkg/logger"
	"github.com/metalldk/storefront/pkg/migrate"
	"github.com/metalldk/storefront/pkg/redis"
	"go.uber.org/multierr"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store persists whole string values under fixed keys. Set replaces the
// previous value in a single operation. There is no cross-process
// coordination: the last writer wins.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open builds the store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	driver, err := enums.ParseStorageDriver(cfg.Storage.Driver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case enums.StorageDriverMemory:
		return NewMemory(), nil
	case enums.StorageDriverFile:
		return NewFile(cfg.Storage.Dir)
	case enums.StorageDriverRedis:
		client, err := redis.New(ctx, cfg.Redis, cfg.Storage.KeyNamespace, logg)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return NewRedis(client), nil
	case enums.StorageDriverSQLite, enums.StorageDriverPostgres:
		dbCfg := cfg.DB
		dbCfg.Driver = driver.String()
		client, err := db.New(ctx, dbCfg, logg)
		if err != nil {
			return nil, fmt.Errorf("open %s storage: %w", driver, err)
		}
		if err := migrate.MaybeAutoRun(ctx, dbCfg, logg, client); err != nil {
			return nil, multierr.Append(fmt.Errorf("migrate %s storage: %w", driver, err), client.Close())
		}
		return NewSQL(client), nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", driver)
}
