package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/conform"
	"github.com/aretw0/conform/internal/config"
	"github.com/aretw0/conform/pkg/adapters/file"
	loamAdapter "github.com/aretw0/conform/pkg/adapters/loam"
	"github.com/aretw0/conform/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/conform/pkg/adapters/redis"
	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
	"github.com/aretw0/loam"
)

// NewService initializes a conform service from configuration.
func NewService(ctx context.Context, cfg *config.Config, logger *slog.Logger, hooks domain.ValidationHooks) (*conform.Service, error) {
	loader, err := newLoader(cfg.Dataset, logger)
	if err != nil {
		return nil, err
	}

	svc, err := conform.New(ctx, loader,
		conform.WithRegistry(newRegistry(cfg.Registry, logger)),
		conform.WithHooks(hooks),
		conform.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing service: %w", err)
	}
	return svc, nil
}

// resolveFormat picks loam for directories when the format is "auto".
func resolveFormat(ds config.DatasetConfig) string {
	if ds.Format != config.FormatAuto {
		return ds.Format
	}
	if info, err := os.Stat(ds.Path); err == nil && info.IsDir() {
		return config.FormatLoam
	}
	return config.FormatManifest
}

func newLoader(ds config.DatasetConfig, logger *slog.Logger) (conform.Loader, error) {
	switch resolveFormat(ds) {
	case config.FormatLoam:
		absPath, err := filepath.Abs(ds.Path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		// Strict mode yields json.Number for every numeric value; the loader
		// normalizes them. The CLI never writes to the dataset.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		media, err := domain.ParseMediaType(ds.MediaType)
		if err != nil {
			return nil, err
		}
		name := ds.Name
		if name == "" {
			name = filepath.Base(absPath)
		}

		l := loamAdapter.New(loam.NewTypedRepository[loamAdapter.SampleMetadata](repo), name, media)
		l.Frames = ds.Frames
		return l, nil
	default:
		l := file.NewLoader(ds.Path)
		l.Logger = logger
		return l, nil
	}
}

func newRegistry(rc config.RegistryConfig, logger *slog.Logger) ports.SchemaStore {
	if rc.Backend == config.BackendRedis {
		return redisAdapter.New(rc.Redis.Addr, rc.Redis.Password, rc.Redis.DB,
			redisAdapter.WithPrefix(rc.Redis.Prefix),
			redisAdapter.WithTTL(rc.Redis.TTL),
			redisAdapter.WithLogger(logger),
		)
	}
	return memory.NewRegistry()
}
