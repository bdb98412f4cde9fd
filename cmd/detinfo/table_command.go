package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/monitoring"
	"github.com/legend-exp/detinfo/internal/units"
)

func newTableCommand(ctx *commandContext) *cobra.Command {
	var types []string
	var csvPath string
	var maxOrder int
	var massUnit string

	cmd := &cobra.Command{
		Use:   "table PARAM...",
		Short: "Print a table of detector parameters",
		Long: "Print one row per detector with the requested parameters, sorted by\n" +
			"production order and name. Missing fields show as 0.",
		Example: "  detinfo table mass depV fwhm_Qbb --types V\n  detinfo table mass --csv masses.csv",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-order") {
				ctx.config.SetMaxOrder(maxOrder)
			}
			opts, err := tableOptions(args, types, ctx.config.GetMaxOrder())
			if err != nil {
				return err
			}
			opts.MassUnit = massUnit
			t, err := ctx.build(opts)
			if err != nil {
				return err
			}

			if csvPath == "" {
				return t.Render(cmd.OutOrStdout())
			}
			f, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", csvPath, err)
			}
			if err := t.WriteCSV(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			monitoring.Logf("Wrote %d detectors to %s", t.Len(), csvPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&types, "types", "t", nil, "Detector types (V, B, P, C or all)")
	cmd.Flags().IntVar(&maxOrder, "max-order", dettable.DefaultMaxOrder, "Highest production order to include (0 for GERDA only)")
	cmd.Flags().StringVar(&massUnit, "mass-unit", units.Kilogram, "Unit for the mass column: g or kg")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write CSV to this file instead of printing")
	return cmd
}
