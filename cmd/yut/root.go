package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yutnori/internal/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:          "yut",
	Short:        "Yut-nori table server and board tools",
	Long:         `yut runs a local yut-nori table that a board UI drives over HTTP and websockets, and prints the supported board graphs.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", ".env", "Configuration file; missing files are ignored")
}

func loadConfig(cmd *cobra.Command) (*bootstrap.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return bootstrap.Setup(path)
}

func NewLogger(cfg *bootstrap.Config) *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	if lvl, err := cfg.Level(); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
