package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sabio/grafana-chatops/pkg/chatops"
	"github.com/sabio/grafana-chatops/pkg/config"
	"github.com/sabio/grafana-chatops/pkg/grafana"
	"github.com/sabio/grafana-chatops/pkg/panels"
	"github.com/sabio/grafana-chatops/pkg/server"
)

func main() {
	configPath := flag.String("config", "", "path to the service config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		log.Fatal().Msg("No config file given, set -config or CONFIG_FILE")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	settings, err := cfg.Settings()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid Grafana settings")
	}

	catalog, err := panels.Load(cfg.PanelsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load panels")
	}

	registry := cfg.Registry()
	renderer := grafana.NewClient(settings.APIKey)
	worker := chatops.NewWorker(settings, catalog, registry, renderer)

	subcommands := chatops.Subcommands(catalog, settings)
	for _, sub := range subcommands {
		log.Info().Str("subcommand", sub.Name).Strs("params", sub.Params).Msg("Registered panel command")
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = "http://localhost" + cfg.ListenAddr
	}

	srv := server.New(worker, subcommands, publicURL)
	log.Info().Str("addr", cfg.ListenAddr).Msg("Listening for chat webhooks")
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
