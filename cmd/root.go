package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jpclemente97/MCT4052FinalProject/constants"
	"github.com/jpclemente97/MCT4052FinalProject/logger"
	"github.com/jpclemente97/MCT4052FinalProject/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "groove",
	Short: "Drummer groove extraction and synthesis",
	Long: `Learns a drummer's feel (velocity and microtiming histograms of kick, snare
and hi-hat) from their MIDI performances and synthesizes new grooves from it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "loading .env")
		}
		return logger.Init(logger.Config{
			Environment: constants.GetEnvironment(),
			SentryDSN:   constants.GetSentryDSN(),
		})
	},
}

// execute runs the command line and flushes the logger whether or not the
// command failed.
func execute(ctx context.Context) error {
	defer logger.Flush()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		zap.L().Error("command failed", zap.Error(err))
	}
	return err
}

func Execute() {
	cobra.CheckErr(execute(context.Background()))
}

func parseDrummerID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Errorf("drummer id must be a number, got %q", s)
	}
	return uint32(id), nil
}

func openStore() (store.Store, error) {
	if table := constants.GetDynamoTable(); table != "" {
		return store.NewDynamo(table, constants.GetDynamoEndpoint())
	}
	return store.CSV{Dir: constants.GetHistogramDir()}, nil
}
