package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	commuter "github.com/obs-gh-trevorColby/caltrain-commuter-app"
	"github.com/obs-gh-trevorColby/caltrain-commuter-app/config"
	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfs"
	"github.com/obs-gh-trevorColby/caltrain-commuter-app/gtfsrt"
	"github.com/obs-gh-trevorColby/caltrain-commuter-app/scraper"
)

func main() {
	origin := flag.String("origin", "", "origin station code (see -stations)")
	destination := flag.String("destination", "", "destination station code")
	at := flag.String("at", "", "query instant, RFC3339 (default now)")
	tripUpdates := flag.String("tripUpdates", "", "GTFS-RT TripUpdates URL or file (overrides config)")
	status := flag.String("status", "", "scraped status page URL or file (overrides config)")
	limit := flag.Int("limit", 0, "maximum trains to return (default from config)")
	listStations := flag.Bool("stations", false, "list known station codes and exit")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if !*debug {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *listStations {
		for _, code := range gtfs.StationCodes() {
			fmt.Println(code)
		}
		return
	}
	if *origin == "" || *destination == "" {
		fmt.Fprintln(os.Stderr, "both -origin and -destination are required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	if err := config.LoadAppConfig(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg := config.Config

	now := time.Now()
	if *at != "" {
		parsed, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			log.Fatal().Err(err).Str("at", *at).Msg("Invalid -at instant")
		}
		now = parsed
	}

	source := gtfs.NewSource(cfg.GTFS.StaticURL, config.APIKey(), cfg.GTFS.LocalZipPath, nil)
	store := gtfs.NewStore(source, time.Duration(cfg.GTFS.CacheTTLHours)*time.Hour)

	resultLimit := cfg.Resolver.Limit
	if *limit > 0 {
		resultLimit = *limit
	}
	resolver, err := commuter.NewResolver(store, resultLimit)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build resolver")
	}

	req := commuter.Request{
		Origin:      *origin,
		Destination: *destination,
		Now:         now,
	}
	req.FeedUpdates, req.ScrapedDelays = gatherRealtime(cfg, *tripUpdates, *status)

	result, err := resolver.NextTrains(context.Background(), req)
	if err != nil {
		log.Fatal().Err(err).Msg("Resolution failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))
}

// gatherRealtime fetches and decodes both optional realtime sources.
// Either failing just means that overlay is absent for this run.
func gatherRealtime(cfg config.AppConfig, tripUpdatesOverride, statusOverride string) (*gtfsrt.Feed, map[string]int) {
	f := newFetcher(time.Duration(cfg.GTFSRT.TimeoutMS) * time.Millisecond)

	tuSource := cfg.GTFSRT.TripUpdatesURL
	if tripUpdatesOverride != "" {
		tuSource = tripUpdatesOverride
	}
	var feed *gtfsrt.Feed
	if raw, err := f.fetch(tuSource); err != nil {
		log.Warn().Err(err).Msg("TripUpdates feed unavailable")
	} else if raw != nil {
		if feed, err = gtfsrt.ParseTripUpdates(raw); err != nil {
			log.Warn().Err(err).Msg("TripUpdates feed malformed")
			feed = nil
		}
	}

	statusSource := cfg.Scraper.StatusURL
	if statusOverride != "" {
		statusSource = statusOverride
	}
	var scraped map[string]int
	if raw, err := f.fetch(statusSource); err != nil {
		log.Warn().Err(err).Msg("Status page unavailable")
	} else if raw != nil {
		if scraped, err = scraper.ParseStatusPage(raw); err != nil {
			log.Warn().Err(err).Msg("Status page malformed")
			scraped = nil
		}
	}

	return feed, scraped
}
