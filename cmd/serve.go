package cmd

import (
	"net/http"

	"github.com/jpclemente97/MCT4052FinalProject/constants"
	"github.com/jpclemente97/MCT4052FinalProject/server"
	"github.com/jpclemente97/MCT4052FinalProject/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves profiles and grooves over HTTP",
	Long:  `Serves stored profiles, synthesized grooves and feature extraction on $PORT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	addr := ":" + constants.GetPort()
	router := server.NewRouter(st, synth.DefaultConfig(0))

	zap.L().Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, router)
}
