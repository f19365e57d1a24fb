// Command hrzones analyzes a FIT activity file offline and writes the filtered view as
// JSON, GeoJSON or Parquet.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/analysis"
	"github.com/stridesense/stridesense-backend-go/internal/export"
	"github.com/stridesense/stridesense-backend-go/internal/fitfile"
	"github.com/stridesense/stridesense-backend-go/internal/logging"
	"github.com/stridesense/stridesense-backend-go/internal/models"
)

func main() {
	fitPath := flag.String("fit", "", "path to an activity .fit file")
	filterArg := flag.String("filter", "none", "none, green, yellow, orange, red or black")
	format := flag.String("format", "json", "output format: json, geojson or parquet")
	outPath := flag.String("out", "", "output path (default stdout)")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logging.New(*logLevel, "console", os.Stderr)
	if err := run(log, *fitPath, *filterArg, *format, *outPath); err != nil {
		log.Fatal().Err(err).Msg("hrzones failed")
	}
}

func run(log zerolog.Logger, fitPath, filterArg, format, outPath string) error {
	if fitPath == "" {
		return fmt.Errorf("-fit is required")
	}
	filter, err := models.ParseFilterState(filterArg)
	if err != nil {
		return err
	}

	f, err := os.Open(fitPath)
	if err != nil {
		return fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()

	activity, err := fitfile.DecodeActivity(f)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(activity.Series)
	if err != nil {
		return err
	}
	view := result.View(filter)

	log.Info().
		Str("file", fitPath).
		Int("points", len(activity.Series)).
		Int("segments", len(view.Segments)).
		Int("anomalies", len(view.Anomalies)).
		Str("filter", filter.String()).
		Msg("Analyzed activity")

	data, err := render(format, view, activity.Summary, result.Center())
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	log.Info().Str("out", outPath).Str("format", format).Msg("Wrote view")
	return nil
}

func render(format string, view models.View, summary *models.ActivitySummary, center *[2]float64) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(models.ActivityView{
			Activity: summary,
			Center:   center,
			View:     view,
		}, "", "  ")
	case "geojson":
		return export.GeoJSON(view)
	case "parquet":
		return export.SegmentsParquet(view)
	default:
		return nil, fmt.Errorf("unsupported format %q (expected json|geojson|parquet)", format)
	}
}
