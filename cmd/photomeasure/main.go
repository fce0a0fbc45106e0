package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/photomeasure/internal/app"
	"github.com/philipparndt/photomeasure/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	v          *viper.Viper
	cfg        app.Config
)

var rootCmd = &cobra.Command{
	Use:   "photomeasure",
	Short: "Measure real-world dimensions on photos",
	Long: `photomeasure measures distances, angles, circles, rectangles and freehand
areas on a photo once it is calibrated against a coin, two blueprint pins or a
stated scale. Measurements are kept in a session file that every command
loads and saves.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("session", "session.json", "Session file")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (YAML, JSON or TOML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	v, err = app.NewViper(configFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("session", cmd.Flags().Lookup("session")); err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", cmd.Flags().Lookup("verbose")); err != nil {
		return err
	}

	level := slog.LevelInfo
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	app.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err = app.LoadConfig(v)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
