package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sjzar/kikitori/internal/kikitori"
	"github.com/sjzar/kikitori/internal/kikitori/conf"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

var (
	flagConfig   string
	flagProvider string
	flagModel    string
	flagLanguage string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "kikitori [audio-file]",
	Short: "Transcribe Japanese audio and follow along sentence by sentence",
	Long: `kikitori loads an mp3 or wav file, transcribes it with a whisper model
and plays the audio back while you follow the transcript. Selecting a
sentence seeks playback to its start time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := conf.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagProvider != "" {
			cfg.Provider = flagProvider
		}
		if flagModel != "" {
			cfg.Model = flagModel
		}
		if flagLanguage != "" {
			cfg.Language = flagLanguage
		}
		if flagLogLevel != "" {
			cfg.LogLevel = flagLogLevel
		}
		cfg.Normalize()

		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return kikitori.Run(cfg, path)
	},
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("kikitori " + Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default ~/.kikitori.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "speech backend: whispercpp, script, openai")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "model size: small, medium, large")
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "language hint (default ja)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
