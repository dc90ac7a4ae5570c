package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1F47E/go-navigator/pkg/export"
	"github.com/1F47E/go-navigator/pkg/format"
	"github.com/1F47E/go-navigator/pkg/logging"
	"github.com/1F47E/go-navigator/pkg/models"
	"github.com/1F47E/go-navigator/pkg/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fromFlag     string
	toFlag       string
	outputFormat string
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Fetch one route and print it",
	Long:  `Request a driving route between two points and print it as text, JSON or GeoJSON.`,
	RunE:  runRoute,
}

var (
	// ANSI color codes
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func init() {
	routeCmd.Flags().StringVar(&fromFlag, "from", "", "Start point as lat,lng")
	routeCmd.Flags().StringVar(&toFlag, "to", "", "Destination as lat,lng")
	routeCmd.Flags().StringVarP(&outputFormat, "format", "o", "text", "Output format: text, json or geojson")
	_ = routeCmd.MarkFlagRequired("from")
	_ = routeCmd.MarkFlagRequired("to")

	// Disable colors if not in a terminal
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		disableColors()
	}
}

func disableColors() {
	colorReset = ""
	colorGreen = ""
	colorYellow = ""
	colorPurple = ""
	colorCyan = ""
	colorBold = ""
}

func runRoute(cmd *cobra.Command, args []string) error {
	from, err := models.ParseCoordinate(fromFlag)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	to, err := models.ParseCoordinate(toFlag)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}
	render, err := renderer(outputFormat)
	if err != nil {
		return err
	}

	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}
	log, err := logging.New(logging.Stderr, cfg.Log.Level, verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	route, err := fetch(cmd.Context(), client, from, to)
	if err != nil {
		log.Error("route unavailable", zap.Error(err))
		return err
	}
	return render(cmd.OutOrStdout(), route)
}

func fetch(ctx context.Context, router tui.Router, from, to models.Coordinate) (*models.Route, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	route, err := router.Route(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("could not calculate route: %w", err)
	}
	return route, nil
}

type renderFunc func(w io.Writer, route *models.Route) error

func renderer(name string) (renderFunc, error) {
	switch strings.ToLower(name) {
	case "", "text":
		return renderText, nil
	case "json":
		return renderJSON, nil
	case "geojson":
		return renderGeoJSON, nil
	default:
		return nil, fmt.Errorf("unknown format %q (text, json, geojson)", name)
	}
}

func renderText(w io.Writer, route *models.Route) error {
	fmt.Fprintf(w, "\n%s%s🧭 Route%s\n", colorBold, colorPurple, colorReset)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	printStat(w, "Distance", format.Distance(route.Distance))
	printStat(w, "Duration", format.Duration(route.Duration))
	printStat(w, "Waypoints", len(route.Coordinates))

	fmt.Fprintf(w, "\n%s%s%d Directions%s\n", colorBold, colorCyan, len(route.Instructions), colorReset)
	for i, ins := range route.Instructions {
		fmt.Fprintf(w, "  %2d. %s %s(%s, %s)%s\n", i+1, ins.Text, colorYellow,
			format.Distance(ins.Distance), format.Duration(ins.Time), colorReset)
	}
	if n := len(route.Coordinates); n > 0 {
		fmt.Fprintf(w, "\n%s✓ Route from %s to %s%s\n", colorGreen,
			route.Coordinates[0], route.Coordinates[n-1], colorReset)
	}
	return nil
}

func printStat(w io.Writer, label string, value interface{}) {
	fmt.Fprintf(w, "  %s%s:%s %s%v%s\n", colorBold, label, colorReset, colorYellow, value, colorReset)
}

func renderJSON(w io.Writer, route *models.Route) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(route)
}

func renderGeoJSON(w io.Writer, route *models.Route) error {
	data, err := export.Marshal(route)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
