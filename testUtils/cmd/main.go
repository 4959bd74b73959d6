package main

//CLI interface to generate deterministic pseudo random sweep tables. Intention is to create large inputs for
//qeppsPlot without storing them, as we can regenerate them by calling the deterministic rng with the same seed
import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"qeppsPlot/testUtils"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		seed    int64
		outPath string
		rows    int
		columns int
	)
	cmd := &cobra.Command{
		Use:          "genSweep",
		Short:        "Write a deterministic pseudo random sweep table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outPath == "" {
				return fmt.Errorf("set \"out\"")
			}
			if rows < 1 || columns < 1 {
				return fmt.Errorf("rows and columns must be positive")
			}
			if err := os.WriteFile(outPath, []byte(testUtils.DRNGSweepTable(rows, columns, seed)), 0644); err != nil {
				return fmt.Errorf("failed to write out file : %w", err)
			}
			log.Info().Str("path", outPath).Int("rows", rows).Int("columns", columns).Msg("wrote sweep table")
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for pseudo RNG")
	cmd.Flags().StringVar(&outPath, "out", "", "where to store output")
	cmd.Flags().IntVar(&rows, "rows", 100, "number of frequency samples")
	cmd.Flags().IntVar(&columns, "columns", 2, "number of complex data columns")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
