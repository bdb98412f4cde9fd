package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legend-exp/detinfo/internal/crystal"
	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/fsutil"
)

func newCrystalsCommand(ctx *commandContext) *cobra.Command {
	var outDir, typeFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "crystals",
		Short: "Create crystal records from the detectors cut from them",
		Long: "Group detectors by crystal id and write <out>/crystals/<stem>.json with\n" +
			"empty impurity curves. Existing crystal records are never overwritten.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := detector.ParseTypes([]string{typeFlag})
			if err != nil {
				return err
			}
			if len(types) != 1 {
				return fmt.Errorf("crystals needs exactly one detector type, got %q", typeFlag)
			}
			if outDir == "" {
				outDir = ctx.config.GetOutputDir()
			}

			crystals, err := crystal.Aggregate(ctx.store(), types[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if dryRun {
				for _, c := range crystals {
					fmt.Fprintf(out, "%s\t%s\t%v\n", c.Stem, c.Serial(), c.Detectors)
				}
				return nil
			}

			paths, err := crystal.Write(fsutil.OSFileSystem{}, outDir, crystals)
			if err != nil {
				return err
			}
			printPaths(cmd, paths)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVarP(&typeFlag, "type", "t", string(detector.ICPC), "Detector type")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List crystals without writing")
	return cmd
}
