package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hueareyou/internal/client"
	"hueareyou/internal/config"
)

var rootFlags struct {
	apiURL  string
	logFile string
}

var rootCmd = &cobra.Command{
	Use:   "hue",
	Short: "Give words a color and see which hues they carry",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.apiURL, "api", "", "API base URL (default from HUE_API_BASE_URL or HUE_ENV)")
	f.StringVar(&rootFlags.logFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(recordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger logs to a file only; the terminal belongs to the UI
func newLogger(cfg *config.ClientConfig) (*zap.Logger, error) {
	path := rootFlags.logFile
	if path == "" {
		if !cfg.Debug {
			return zap.NewNop(), nil
		}
		path = "hue-debug.log"
	}
	zc := zap.NewDevelopmentConfig()
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	return zc.Build()
}

func newClient(cfg *config.ClientConfig, logger *zap.Logger) (*client.Client, error) {
	base := cfg.APIBaseURL
	if rootFlags.apiURL != "" {
		base = rootFlags.apiURL
	}
	return client.New(base,
		client.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		client.WithLogger(logger.Named("client")),
	)
}
