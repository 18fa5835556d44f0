// Package main provides the entry point for the speedquiz CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/speedquiz/ui"
)

const defaultEndpoint = "https://quiet-ink-groq.vercel.app/api/tts"

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	endpoint   string
	bgmPath    string
	debug      bool
	mockAudio  bool
	lookahead  int
	pacingMS   int
	duration   int

	rootCmd = &cobra.Command{
		Use:           "speedquiz",
		Short:         "Timed trivia with narrated questions",
		Long:          "\nA timed trivia game that reads each question aloud, with background music and a local ranking board.",
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          execute,
	}
)

func execute(*cobra.Command, []string) error {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	// Environment wins over config file, flags win over both. Viper
	// carries the flag bindings and file values.
	if cfg.Endpoint == "" {
		cfg.Endpoint = viper.GetString("endpoint")
	}
	if cfg.BGMPath == "" {
		cfg.BGMPath = viper.GetString("bgm")
	}
	cfg.MockAudio = cfg.MockAudio || viper.GetBool("mock-audio")
	cfg.Debug = cfg.Debug || viper.GetBool("debug")
	cfg.SessionSeconds = viper.GetInt("duration")
	cfg.Lookahead = viper.GetInt("lookahead")
	cfg.Pacing = time.Duration(viper.GetInt("pacing")) * time.Millisecond

	closer, err := setupLog(cfg)
	if err != nil {
		return err
	}
	defer closer()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("speedquiz needs an interactive terminal")
	}

	program, err := ui.NewProgram(cfg)
	if err != nil {
		return err
	}
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVar(&endpoint, "endpoint", defaultEndpoint, "speech synthesis service URL")
	rootCmd.Flags().StringVar(&bgmPath, "bgm", "", "MP3 file to loop as background music")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "verbose logging and clock adjustment keys")
	rootCmd.Flags().BoolVar(&mockAudio, "mock-audio", false, "run without a sound device")
	rootCmd.Flags().IntVar(&duration, "duration", 120, "game length in seconds")
	rootCmd.Flags().IntVar(&lookahead, "lookahead", 3, "upcoming questions to keep synthesized")
	rootCmd.Flags().IntVar(&pacingMS, "pacing", 400, "delay between background synthesis requests (ms)")

	_ = viper.BindPFlag("endpoint", rootCmd.Flags().Lookup("endpoint"))
	_ = viper.BindPFlag("bgm", rootCmd.Flags().Lookup("bgm"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("mock-audio", rootCmd.Flags().Lookup("mock-audio"))
	_ = viper.BindPFlag("duration", rootCmd.Flags().Lookup("duration"))
	_ = viper.BindPFlag("lookahead", rootCmd.Flags().Lookup("lookahead"))
	_ = viper.BindPFlag("pacing", rootCmd.Flags().Lookup("pacing"))

	viper.SetDefault("endpoint", defaultEndpoint)
	viper.SetDefault("duration", 120)
	viper.SetDefault("lookahead", 3)
	viper.SetDefault("pacing", 400)

	rootCmd.AddCommand(configCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "speedquiz")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "speedquiz")}, dirs...)
	}

	if c := os.Getenv("SPEEDQUIZ_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("speedquiz")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("speedquiz")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "speedquiz.yml")
}
