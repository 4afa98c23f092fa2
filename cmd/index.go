package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/denysvitali/webtree/pkg/config"
	"github.com/denysvitali/webtree/pkg/listing"
	"github.com/denysvitali/webtree/pkg/sysinfo"
	"github.com/denysvitali/webtree/pkg/telemetry"
)

func newIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Regenerate index.html listings below the web root",
		Long: `Walk the web root and write an index.html into it and into every directory
below it. Excluded names (see index.exclude) and hidden names are neither listed
nor walked. Existing index.html files are overwritten.`,
		Args: cobra.NoArgs,
		RunE: runIndex,
	}

	cmd.Flags().String("root", "", "Web root to walk (default "+config.DefaultIndexRoot+")")
	cmd.Flags().StringSlice("exclude", nil, "Additional names to leave out of listings")
	cmd.Flags().Float64("disk-warn-percent", 0, "Warn when the web root filesystem is fuller than this")

	_ = viper.BindPFlag("index.root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("index.extra_exclude", cmd.Flags().Lookup("exclude"))
	_ = viper.BindPFlag("index.disk_warn_percent", cmd.Flags().Lookup("disk-warn-percent"))

	return cmd
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cleanup := startTelemetry(cfg)
	defer cleanup()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Generating directory indexes...")

	sysinfo.CheckDiskSpace(logger, cfg.Index.Root, cfg.Index.DiskWarnPercent)

	gen := listing.New(listing.Options{
		Root:       cfg.Index.Root,
		Exclusions: cfg.Index.Exclusions(),
	}, logger, out)

	summary, err := gen.GenerateAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to generate indexes: %w", err)
	}
	telemetry.ReportJSON(cmd.Context(), logger, "generate_all", summary)

	fmt.Fprintln(out, "Generation complete!")
	return nil
}
