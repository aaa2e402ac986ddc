// Command solatctl runs maintenance tasks against the prayer time store.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/waktusolat/solat-api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "solatctl",
	Short:         "Maintenance tool for the waktu solat API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Getenv("LOG_LEVEL"), "console")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, importCmd, zonesCmd, boundariesCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("solatctl failed")
		os.Exit(1)
	}
}
