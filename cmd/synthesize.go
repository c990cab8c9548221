package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpclemente97/MCT4052FinalProject/constants"
	"github.com/jpclemente97/MCT4052FinalProject/corpus"
	"github.com/jpclemente97/MCT4052FinalProject/synth"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var synthFlags = synth.DefaultConfig(0)

func init() {
	f := synthesizeCmd.Flags()
	f.IntVarP(&synthFlags.OutputCount, "count", "c", synthFlags.OutputCount, "performances to generate")
	f.IntVarP(&synthFlags.NoteCountPerGroup, "notes", "n", synthFlags.NoteCountPerGroup, "hits per instrument group in each performance")
	f.Uint64VarP(&synthFlags.Seed, "seed", "s", 0, "random seed, 0 picks one")
	f.IntVarP(&synthFlags.Workers, "workers", "w", synthFlags.Workers, "performances rendered in parallel")
	rootCmd.AddCommand(synthesizeCmd)
}

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize [drummerID]",
	Short: "Generates grooves in a drummer's style",
	Long: `Generates MIDI drum grooves from a drummer's stored histograms into
$OUTPUT_PATH/drummer<ID>. Without an argument the drummer is asked for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			id  uint32
			err error
		)
		if len(args) == 1 {
			id, err = parseDrummerID(args[0])
		} else {
			id, err = promptDrummerID(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}

		cfg := synthFlags
		cfg.DrummerID = id
		return synthesize(cmd, cfg)
	},
}

func promptDrummerID(in io.Reader, out io.Writer) (uint32, error) {
	fmt.Fprint(out, "Which drummer would you like to generate a groove for? ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, errors.Wrap(err, "reading drummer id")
	}
	return parseDrummerID(strings.TrimSpace(line))
}

func synthesize(cmd *cobra.Command, cfg synth.SynthesisConfig) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	profile, err := st.Load(cmd.Context(), cfg.DrummerID)
	if err != nil {
		return err
	}

	dir := corpus.DrummerDir(constants.GetOutputDir(), cfg.DrummerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %v", dir)
	}
	m, err := synth.Run(cmd.Context(), cfg, profile, synth.DirSink{Dir: dir})
	if err != nil {
		return err
	}
	if err := synth.WriteManifest(dir, m); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %v files to %v (seed %v)\n", len(m.Files), filepath.Clean(dir), m.Seed)
	return nil
}
