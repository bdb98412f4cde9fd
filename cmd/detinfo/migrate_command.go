package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legend-exp/detinfo/internal/migration"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var outDir, csvPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Rewrite old-format detector records into the new schema",
		Long: "Convert every record in the metadata directory and write it to\n" +
			"<out>/detectors. Nothing is written if any record fails to convert.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outDir == "" {
				outDir = ctx.config.GetOutputDir()
			}
			if csvPath == "" {
				csvPath = ctx.config.GetDeadLayerCSV()
			}

			m := migration.NewMigrator()
			m.DeadLayerCSV = csvPath
			rep, err := m.Run(ctx.config.GetMetadataDir(), outDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s: migrated %d detectors in %s\n", rep.RunID, len(rep.Migrated), rep.Duration)
			fmt.Fprintf(out, "Dead layers: %d written to %s\n", len(rep.DeadLayers), rep.CSVPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVar(&csvPath, "dl-csv", "", "Dead-layer CSV path (default <out>/dl_thickness_in_mm.csv)")
	return cmd
}
