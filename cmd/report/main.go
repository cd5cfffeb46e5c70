package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"pulseboard/adapters/ingest"
	"pulseboard/domain/table"
	"pulseboard/internal/classify"
	"pulseboard/internal/filter"
	"pulseboard/internal/registry"
	"pulseboard/internal/report"
	"pulseboard/internal/view"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pulseboard-report",
		Short: "Offline reporting over uploaded tabular files",
	}

	rootCmd.AddCommand(
		newReportCmd(),
		newSchemaCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReportCmd() *cobra.Command {
	var granularity string
	var format string

	cmd := &cobra.Command{
		Use:   "report [files...]",
		Short: "Derive views and print a report per file",
		Long: `Decode each CSV/XLSX file, derive the full dashboard view, and print a
report to stdout.

Example: pulseboard-report report sales_fom.csv sales_lfom.xlsx --granularity week`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := table.Granularity(granularity)
			if !g.Valid() {
				return fmt.Errorf("invalid granularity %q (use day, week, or month)", granularity)
			}

			reg := registry.New()
			views := view.NewService(reg, filter.NewEngine())

			for _, path := range args {
				decoded, err := ingest.NewReader(path).Read()
				if err != nil {
					return fmt.Errorf("decode %s: %w", path, err)
				}
				ds, err := reg.Add(decoded.DisplayName, decoded.Rows)
				if err != nil {
					return fmt.Errorf("register %s: %w", path, err)
				}

				v, err := views.Derive(ds.ID, g)
				if err != nil {
					return fmt.Errorf("derive %s: %w", path, err)
				}

				switch format {
				case "markdown":
					fmt.Fprint(cmd.OutOrStdout(), report.Markdown(v))
				case "html":
					cmd.OutOrStdout().Write(report.HTML(v))
				default:
					return fmt.Errorf("invalid format %q (use markdown or html)", format)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&granularity, "granularity", "month", "Time bucket size: day|week|month")
	cmd.Flags().StringVar(&format, "format", "markdown", "Output format: markdown|html")

	return cmd
}

func newSchemaCmd() *cobra.Command {
	var sampleSize int

	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Print the inferred column roles for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := ingest.NewReader(args[0]).Read()
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			reg := classify.Classify(decoded.Rows, sampleSize)

			cols := make([]string, 0, len(reg.Roles))
			for col := range reg.Roles {
				cols = append(cols, col)
			}
			sort.Strings(cols)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d columns, %d rows\n\n", decoded.DisplayName, len(cols), len(decoded.Rows))
			for _, col := range cols {
				excluded := ""
				if reg.IsChartExcluded(col) {
					excluded = " (chart-excluded)"
				}
				fmt.Fprintf(out, "  %-30s %s%s\n", col, reg.Roles[col], excluded)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sampleSize, "sample-size", classify.DefaultSampleSize, "Rows inspected per column")

	return cmd
}
