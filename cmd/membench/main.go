// Command membench compares allocation strategies against container and
// matrix workloads, reporting timing and tracked allocation counters.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/memres/internal/bench"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "membench",
		Short:        "Benchmark allocation strategies against container workloads",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newScenariosCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		scenarios  []string
		iterations int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run benchmark scenarios and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := bench.DefaultConfig()
			if configPath != "" {
				var err error
				cfg, err = bench.Load(configPath)
				if err != nil {
					return err
				}
			}
			if iterations > 0 {
				cfg.Iterations = iterations
			}
			results, err := bench.Run(cfg, scenarios)
			if err != nil {
				return err
			}
			bench.WriteReport(cmd.OutOrStdout(), results)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML benchmark config")
	cmd.Flags().StringSliceVarP(&scenarios, "scenario", "s", nil, "scenarios to run (default: all)")
	cmd.Flags().IntVarP(&iterations, "iterations", "n", 0, "override the configured iteration count")
	return cmd
}

func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			for _, sc := range bench.Scenarios() {
				fmt.Fprintf(w, "%-20s %s\n", sc.Name, sc.Description)
			}
		},
	}
}
