package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/1F47E/go-navigator/pkg/config"
	"github.com/1F47E/go-navigator/pkg/logging"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/osrm"
	"github.com/1F47E/go-navigator/pkg/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	verbose    bool
	osrmURL    string

	startFlag string
	endFlag   string
	findFlag  bool
)

var rootCmd = &cobra.Command{
	Use:          "navigator",
	Short:        "Terminal route planner backed by an OSRM routing service",
	Long:         `Pick a start and a destination on a terminal map, fetch a driving route and replay it as an animated graph.`,
	SilenceUsage: true,
	RunE:         runUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default config.yaml, then config.yaml.example)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().StringVar(&osrmURL, "osrm-url", "", "Routing service base URL (overrides config and "+config.EnvOSRMURL+")")

	rootCmd.Flags().StringVar(&startFlag, "start", "", "Preselected start point as lat,lng")
	rootCmd.Flags().StringVar(&endFlag, "end", "", "Preselected destination as lat,lng")
	rootCmd.Flags().BoolVar(&findFlag, "find", false, "Find the route on launch (needs --start and --end)")

	rootCmd.AddCommand(routeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings resolves configuration: .env, the YAML file, the environment,
// then flags
func loadSettings() (config.Config, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, "", err
	}
	cfg, source, err := config.Load(configFile)
	if err != nil {
		return cfg, "", err
	}
	cfg.ApplyEnv(nil)
	if osrmURL != "" {
		cfg.Routing.BaseURL = osrmURL
	}
	if err := cfg.Validate(); err != nil {
		return cfg, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, source, nil
}

func newClient(cfg config.Config, log *zap.Logger) (*osrm.Client, error) {
	return osrm.NewClient(cfg.Routing.BaseURL,
		osrm.WithProfile(cfg.Routing.Profile),
		osrm.WithGeometry(cfg.GeometryFormat()),
		osrm.WithTimeout(cfg.Timeout()),
		osrm.WithLogger(log),
	)
}

func parseOptional(flag, value string) (*models.Coordinate, error) {
	if value == "" {
		return nil, nil
	}
	c, err := models.ParseCoordinate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &c, nil
}

func runUI(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the interactive navigator needs a terminal, use `navigator route` for scripts")
	}

	cfg, source, err := loadSettings()
	if err != nil {
		return err
	}

	start, err := parseOptional("start", startFlag)
	if err != nil {
		return err
	}
	end, err := parseOptional("end", endFlag)
	if err != nil {
		return err
	}
	if end != nil && start == nil {
		return errors.New("--end needs --start")
	}

	log, err := logging.New(cfg.Log.File, cfg.Log.Level, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	log.Info("starting navigator",
		zap.String("config", source),
		zap.String("osrm", cfg.Routing.BaseURL),
		zap.String("profile", cfg.Routing.Profile))

	model := tui.New(tui.Options{
		Router:    client,
		Log:       log,
		Center:    cfg.Map.Center,
		Zoom:      cfg.Map.Zoom,
		FocusZoom: cfg.Map.FocusZoom,
		Timeout:   cfg.Timeout(),
		FPS:       cfg.Playback.FPS,
		Step:      cfg.Playback.Step,
		Start:     start,
		End:       end,
		Find:      findFlag,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("ui stopped", zap.Error(err))
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("navigator closed")
	return nil
}
