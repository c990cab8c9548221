package cmd

import (
	"fmt"
	"io"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <drummerID>",
	Short: "Prints a drummer's histograms",
	Long:  `Prints the stored velocity and microtiming histograms of a drummer.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDrummerID(args[0])
		if err != nil {
			return err
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		p, err := st.Load(cmd.Context(), id)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), p)
		return nil
	},
}

func printTable(out io.Writer, h model.Histogram, column func(model.InstrumentGroup) string, weights map[model.InstrumentGroup][]float64) {
	fmt.Fprintf(out, "%-16s", "bin")
	for _, g := range model.FeatureOrder {
		fmt.Fprintf(out, "%20s", column(g))
	}
	fmt.Fprintln(out)

	for i := 0; i+1 < len(h.Dividers); i++ {
		fmt.Fprintf(out, "%-16s", fmt.Sprintf("[%.3g, %.3g)", h.Dividers[i], h.Dividers[i+1]))
		for _, g := range model.FeatureOrder {
			fmt.Fprintf(out, "%20.4f", weights[g][i])
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%-16s", "sum")
	for _, g := range model.FeatureOrder {
		fmt.Fprintf(out, "%20.4f", floats.Sum(weights[g]))
	}
	fmt.Fprintln(out)
}

func report(out io.Writer, p model.GrooveProfile) {
	printTable(out, model.NewVelocityHistogram(), model.VelocityColumn, p.Velocity)
	fmt.Fprintln(out)
	printTable(out, model.NewMicrotimingHistogram(), model.MicrotimingColumn, p.Microtiming)
}
