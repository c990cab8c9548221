package cmd

import (
	"fmt"

	"github.com/jpclemente97/MCT4052FinalProject/constants"
	"github.com/jpclemente97/MCT4052FinalProject/corpus"
	"github.com/spf13/cobra"
)

var aggregateWorkers int

func init() {
	aggregateCmd.Flags().IntVarP(&aggregateWorkers, "workers", "w", constants.ExtractWorkers, "files decoded in parallel")
	rootCmd.AddCommand(aggregateCmd)
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <drummerID>",
	Short: "Builds a drummer's histograms",
	Long: `Extracts velocity and microtiming histograms from every performance under
$MEDIA_PATH/drummer<ID>, averages them and saves the result to the histogram store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseDrummerID(args[0])
		if err != nil {
			return err
		}
		return aggregate(cmd, id)
	},
}

func aggregate(cmd *cobra.Command, id uint32) error {
	media, err := constants.GetMediaDir()
	if err != nil {
		return err
	}
	d, err := corpus.LoadDrummer(media, id)
	if err != nil {
		return err
	}
	profile, report, err := corpus.AggregateDrummer(cmd.Context(), d, aggregateWorkers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range report.Skipped {
		fmt.Fprintf(out, "skipped %v: %v\n", r.Path, r.Err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if err := st.Save(cmd.Context(), id, profile); err != nil {
		return err
	}
	fmt.Fprintf(out, "Aggregated %v of %v files for %v\n", report.Used, len(d.Files), d.Name)
	return nil
}
