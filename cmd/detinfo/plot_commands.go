package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/legend-exp/detinfo/internal/config"
	"github.com/legend-exp/detinfo/internal/detector"
	"github.com/legend-exp/detinfo/internal/dettable"
	"github.com/legend-exp/detinfo/internal/plotting"
	"github.com/legend-exp/detinfo/internal/report"
)

type plotFlags struct {
	dir    string
	format string
	html   bool
}

func (f *plotFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "plots", "o", "", "Directory for figures")
	cmd.Flags().StringVar(&f.format, "format", "", "Figure format: pdf, png or svg")
	cmd.Flags().BoolVar(&f.html, "html", true, "Also write an interactive HTML chart")
}

func (f *plotFlags) renderer(cmd *cobra.Command, cfg *config.Config) (*plotting.Renderer, error) {
	r := plotting.NewRenderer(cfg.GetPlotsDir())
	r.Format = cfg.GetPlotFormat()
	r.HTML = cfg.GetHTML()
	if f.dir != "" {
		r.Dir = f.dir
	}
	if f.format != "" {
		if !plotting.IsValidFormat(f.format) {
			return nil, fmt.Errorf("unknown figure format %q", f.format)
		}
		r.Format = f.format
	}
	if cmd.Flags().Changed("html") {
		r.HTML = f.html
	}
	return r, nil
}

func printPaths(cmd *cobra.Command, paths []string) {
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
}

func newPieCommand(ctx *commandContext) *cobra.Command {
	var pf plotFlags
	var target int

	cmd := &cobra.Command{
		Use:   "pie",
		Short: "Plot detector mass per production category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The mass target covers every order, whatever max_order says.
			t, err := ctx.build(dettable.Options{Params: []string{dettable.MassParam}})
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("target") {
				target = ctx.config.GetTargetMassKg()
			}
			status, err := report.ProductionStatus(t, target)
			if err != nil {
				return err
			}
			r, err := pf.renderer(cmd, ctx.config)
			if err != nil {
				return err
			}
			paths, err := r.Pie(status)
			if err != nil {
				return err
			}
			printPaths(cmd, paths)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().IntVar(&target, "target", report.DefaultTargetMassKg, "Target total mass in kg")
	return cmd
}

func newParamsCommand(ctx *commandContext) *cobra.Command {
	var pf plotFlags
	var types []string
	var avg bool
	var maxOrder int

	cmd := &cobra.Command{
		Use:     "params PARAM...",
		Short:   "Plot parameters against detectors, grouped by production order",
		Example: "  detinfo params depV depV_man --types V --avg\n  detinfo params mass --types B",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("max-order") {
				ctx.config.SetMaxOrder(maxOrder)
			}
			params := splitList(args)
			t, err := ctx.buildTable(params, types)
			if err != nil {
				return err
			}
			ts, err := detector.ParseTypes(splitList(types))
			if err != nil {
				return err
			}
			set, err := report.BuildSeries(t, params, ts, avg)
			if err != nil {
				return err
			}
			r, err := pf.renderer(cmd, ctx.config)
			if err != nil {
				return err
			}
			paths, err := r.Series(set)
			if err != nil {
				return err
			}
			printPaths(cmd, paths)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringSliceVarP(&types, "types", "t", []string{detector.ICPC.String()}, "Detector types (V, B, P, C or all)")
	cmd.Flags().BoolVar(&avg, "avg", false, "Draw per-order and global averages")
	cmd.Flags().IntVar(&maxOrder, "max-order", dettable.DefaultMaxOrder, "Highest production order to include (0 for GERDA only)")
	return cmd
}
