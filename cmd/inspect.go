package cmd

import (
	"fmt"
	"io"

	"github.com/jpclemente97/MCT4052FinalProject/feature"
	"github.com/jpclemente97/MCT4052FinalProject/midi"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/jpclemente97/MCT4052FinalProject/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a performance",
	Long:  `Prints the tracked hits of a MIDI performance and the features extracted from it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(out io.Writer, path string) error {
	p, err := midi.LoadPerformance(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "name: %v\n", p.Name)
	fmt.Fprintf(out, "style: %v tempo: %v beat: %v time signature: %v\n", p.Style, p.Tempo, p.IsBeat, p.TimeSignature)
	fmt.Fprintf(out, "ticks per quarter: %v (%v per 16th)\n", p.TicksPerQuarter, p.TicksPerSixteenth())

	s := feature.Summarize(p)
	hits := make([]int, 0, len(s.Hits))
	for _, g := range model.FeatureOrder {
		fmt.Fprintf(out, "%v hits: %v\n", g, s.Hits[g])
		hits = append(hits, s.Hits[g])
	}
	fmt.Fprintf(out, "tracked hits: %v\n", util.Sum(hits))
	for _, key := range util.GetKeys(s.Untracked) {
		fmt.Fprintf(out, "untracked %v: %v\n", key, s.Untracked[key])
	}

	f, err := feature.Extract(p)
	if err != nil {
		return err
	}
	for _, g := range model.FeatureOrder {
		v, m := f.Group(g)
		fmt.Fprintf(out, "%v: %.3f\n", model.VelocityColumn(g), v)
		fmt.Fprintf(out, "%v: %.3f\n", model.MicrotimingColumn(g), m)
	}
	return nil
}
