package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/waktusolat/solat-api/internal/config"
	"github.com/waktusolat/solat-api/internal/geo"
	"github.com/waktusolat/solat-api/internal/storage"
)

// InitStorage selects and returns the configured boundary storage backend
func InitStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesPrefix,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Spaces storage: %w", err)
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Str("prefix", cfg.SpacesPrefix).Msg("Using DigitalOcean Spaces for boundaries")
		return spacesStorage, nil
	}

	log.Info().Str("dir", cfg.BoundarySource).Msg("Using local boundary files")
	return storage.NewLocalStorage(cfg.BoundarySource), nil
}

// LoadBoundaries builds the spatial index from the named GeoJSON object.
func LoadBoundaries(ctx context.Context, st storage.Storage, name string) (*geo.Resolver, error) {
	rc, err := st.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	districts, err := geo.DecodeGeoJSON(rc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if len(districts) == 0 {
		return nil, fmt.Errorf("load %s: no districts", name)
	}
	return geo.NewResolver(districts), nil
}
