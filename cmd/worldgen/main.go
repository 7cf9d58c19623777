// Command worldgen generates a world and prints an ASCII preview with its
// layout statistics.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"projectz/server/catalog"
	"projectz/server/config"
	"projectz/server/generation"
	"projectz/server/persistence"
	"projectz/server/world"
)

func main() {
	width := flag.Int("width", 128, "world width in tiles, a multiple of 16")
	height := flag.Int("height", 128, "world height in tiles, a multiple of 16")
	seed := flag.String("seed", "prototype", "generation seed")
	catalogPath := flag.String("catalog", "", "item catalog YAML, empty for the built-in catalog")
	out := flag.String("out", "", "JSON store to save the world into")
	name := flag.String("name", "city", "world name used when saving")
	quiet := flag.Bool("quiet", false, "skip the ASCII preview")
	paramsPath := flag.String("params", "", "YAML file overriding layout constants")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := config.NewLogger(*level, os.Stderr)

	items, err := catalog.LoadOrDefault(*catalogPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load item catalog")
	}

	params := generation.DefaultParams()
	if *paramsPath != "" {
		data, err := os.ReadFile(*paramsPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read params")
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			logger.Fatal().Err(err).Msg("failed to parse params")
		}
	}

	m, err := generation.NewGenerator(*seed,
		generation.WithParams(params),
		generation.WithLogger(logger),
	).Generate(*width, *height, items)
	if err != nil {
		logger.Fatal().Err(err).Msg("generation failed")
	}
	m.Name = *name

	if !*quiet {
		fmt.Print(world.RenderASCII(m.Grid))
	}
	fmt.Printf("seed=%s size=%dx%d start=%v flag=%v safehouse=%v\n",
		m.Seed, m.Width(), m.Height(), m.PlayerStart, m.FlagLocation, m.Safehouse())
	fmt.Printf("%+v\n", m.Stats)

	if *out == "" {
		return
	}
	store, err := persistence.NewJSONStore(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.Close()
	if err := store.SaveWorld(*name, m.Snapshot()); err != nil {
		logger.Error().Err(err).Msg("failed to save world")
		return
	}
	logger.Info().Str("file", *out).Str("world", *name).Msg("world saved")
}
