package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sofiagarciadougherty/InMaps/internal/config"
	"github.com/sofiagarciadougherty/InMaps/internal/logging"
	"github.com/sofiagarciadougherty/InMaps/internal/observability"
	"github.com/sofiagarciadougherty/InMaps/internal/store"
	"github.com/sofiagarciadougherty/InMaps/navigator"
	"github.com/sofiagarciadougherty/InMaps/venue"
)

var versionString = "dev"

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath  string
	database    string
	dumpMetrics bool
}

// NewRootCommand builds the inmaps command tree.
func NewRootCommand() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "inmaps",
		Short: "InMaps - indoor positioning and routing",
		Long: `InMaps rasterizes venue geometry into an occupancy grid, routes
visitors to named points of interest and estimates their position from
beacon signal strengths.`,
		Version:       versionString,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "inmaps.yml", "Path to the YAML configuration (defaults are used when the file is missing)")
	root.PersistentFlags().StringVar(&g.database, "db", "", "SQLite venue database (overrides the config database)")
	root.PersistentFlags().BoolVar(&g.dumpMetrics, "metrics", false, "Print Prometheus metrics after the command")

	root.AddCommand(
		newImportCommand(g),
		newGridCommand(g),
		newRouteCommand(g),
		newLocateCommand(g),
		newCalibrateCommand(g),
	)
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// env is the per-invocation wiring built from the global flags.
type env struct {
	metrics *observability.Collector
	svc     *navigator.Service
	out     io.Writer
	dump    bool
}

func (g *globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}
	if g.database != "" {
		cfg.Database = g.database
	}
	return cfg, nil
}

// setup loads configuration and venue data and starts a navigator.
// Overrides from command flags are applied to the loaded configuration
// before it is validated again.
func (g *globals) setup(cmd *cobra.Command, overrides ...func(*config.Config)) (*env, error) {
	ctx := cmd.Context()
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		for _, o := range overrides {
			o(cfg)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	lc := cfg.LoggerConfig()
	lc.Output = cmd.ErrOrStderr()
	log := logging.New(lc)

	metrics, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}

	elements, aliases, err := loadVenue(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	gridOpts, err := cfg.GridOptions()
	if err != nil {
		return nil, err
	}
	svc, err := navigator.New(ctx, navigator.Config{
		GridOptions:  gridOpts,
		Locate:       cfg.LocateOptions(),
		InitialScale: cfg.Calibration.InitialScale,
		Aliases:      aliases,
	}, elements, navigator.WithLogger(log), navigator.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}
	return &env{metrics: metrics, svc: svc, out: cmd.OutOrStdout(), dump: g.dumpMetrics}, nil
}

// loadVenue prefers the SQLite store when one is configured and non-empty.
// Config aliases take precedence over stored ones.
func loadVenue(ctx context.Context, cfg *config.Config, log logging.Logger) ([]venue.Element, map[string]string, error) {
	aliases := make(map[string]string, len(cfg.Beacons.Aliases))
	inline, err := cfg.Elements()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database == "" {
		for k, v := range cfg.Beacons.Aliases {
			aliases[k] = v
		}
		return inline, aliases, nil
	}

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	stored, rep, err := st.LoadElements(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load venue: %w", err)
	}
	if len(rep.Skipped) > 0 {
		log.Warn(ctx, "skipped unreadable venue rows", logging.Any("ids", rep.Skipped))
	}
	storedAliases, err := st.LoadAliases(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load aliases: %w", err)
	}
	for k, v := range storedAliases {
		aliases[k] = v
	}
	for k, v := range cfg.Beacons.Aliases {
		aliases[k] = v
	}

	if len(stored) == 0 {
		log.Info(ctx, "venue database empty, using inline elements", logging.String("database", cfg.Database))
		return inline, aliases, nil
	}
	return stored, aliases, nil
}

func (e *env) finish() error {
	if !e.dump {
		return nil
	}
	return e.metrics.WriteText(e.out)
}
