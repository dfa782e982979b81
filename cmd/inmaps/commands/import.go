package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sofiagarciadougherty/InMaps/internal/store"
)

func newImportCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy the configured venue and beacon aliases into the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database == "" {
				return fmt.Errorf("no database configured: set database in %s or pass --db", g.configPath)
			}
			elements, err := cfg.Elements()
			if err != nil {
				return err
			}

			st, err := store.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SaveElements(ctx, elements); err != nil {
				return fmt.Errorf("save elements: %w", err)
			}
			if err := st.SaveAliases(ctx, cfg.Beacons.Aliases); err != nil {
				return fmt.Errorf("save aliases: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d elements and %d aliases into %s\n",
				len(elements), len(cfg.Beacons.Aliases), cfg.Database)
			return nil
		},
	}
}
