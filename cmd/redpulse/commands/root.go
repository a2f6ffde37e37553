package commands

import (
	"redpulse/internal/config"
	"redpulse/internal/direct"
	"redpulse/internal/jobs"
	"redpulse/internal/logging"
	"redpulse/internal/mcp"
	"redpulse/internal/redmine"
	"redpulse/internal/snapshot"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	client redmine.Client
	cache  *snapshot.Cache
)

var rootCmd = &cobra.Command{
	Use:   "redpulse",
	Short: "Redpulse is an analytics MCP server for Redmine",
	Long: `An MCP server that answers sprint, backlog, workload, quality and delivery
questions over Redmine data, either from a TTL-cached snapshot or via
direct count queries against the Redmine REST API.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		client = redmine.NewClient(cfg.Redmine)
		cache = snapshot.New(client, cfg.CacheTTL)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("Redpulse starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		engine := direct.NewEngine(client)

		if cfg.RefreshCron != "" {
			refresher := jobs.NewRefresher(cfg.RefreshCron, cache)
			refresher.Start()
			defer refresher.Stop()
		}

		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cache, engine, client)
		if err := server.Serve(); err != nil {
			log.Error().Err(err).Msg("Server loop terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
