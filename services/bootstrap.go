package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"projectz/server/generation"
	"projectz/server/models"
	"projectz/server/persistence"
	"projectz/server/world"
)

// WorldOptions names the world to load, and how to generate it when it is missing
type WorldOptions struct {
	Name    string
	Seed    string
	Width   int
	Height  int
	Catalog []*models.Item
	Params  generation.Params
}

// LoadOrGenerate restores a saved world by name or generates and saves a new one.
// The second return value reports whether generation ran.
func LoadOrGenerate(db persistence.Storage, opts WorldOptions, logger zerolog.Logger) (*world.Map, bool, error) {
	gm, err := db.LoadWorld(opts.Name)
	switch {
	case err == nil:
		m, err := world.Restore(gm)
		if err != nil {
			return nil, false, fmt.Errorf("restore world %q: %w", opts.Name, err)
		}
		logger.Info().Str("world", opts.Name).Str("seed", m.Seed).Msg("world restored")
		return m, false, nil
	case !errors.Is(err, persistence.ErrNotFound):
		return nil, false, fmt.Errorf("load world %q: %w", opts.Name, err)
	}

	logger.Info().Str("world", opts.Name).Str("seed", opts.Seed).Int("width", opts.Width).Int("height", opts.Height).Msg("generating world")
	m, err := generation.NewGenerator(opts.Seed,
		generation.WithParams(opts.Params),
		generation.WithLogger(logger),
	).Generate(opts.Width, opts.Height, opts.Catalog)
	if err != nil {
		return nil, false, fmt.Errorf("generate world %q: %w", opts.Name, err)
	}
	m.Name = opts.Name
	if err := db.SaveWorld(opts.Name, m.Snapshot()); err != nil {
		return nil, true, fmt.Errorf("save world %q: %w", opts.Name, err)
	}
	return m, true, nil
}
