// Package main provides the radio command entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/app/directory"
	"github.com/osa030/radio/internal/app/filter"
	"github.com/osa030/radio/internal/app/playback"
	"github.com/osa030/radio/internal/app/source"
	"github.com/osa030/radio/internal/infra/config"
	"github.com/osa030/radio/internal/infra/logger"
	"github.com/osa030/radio/internal/infra/player"
	"github.com/osa030/radio/internal/infra/radiooooo"
	"github.com/osa030/radio/internal/ui"
)

const usage = `Terminal client for radiooooo.com: music from everywhere, everywhen.

Examples:
  radio italy 1970           Italian music from the 70s
  radio japan 80s            Japanese music from the 80s
  radio brazil               Random decade, Brazilian music
  radio 1950                 Random country, 1950s music
  radio --mood slow france   Slow French music
  radio --mood weird 60s     Weird music from the 60s
  radio                      Surprise me!
  radio --list               List all countries
  radio --list 1970          Countries with 70s music`

var (
	app        = kingpin.New("radio", usage)
	filters    = app.Arg("filters", "Country name/code and/or decade (e.g. 'italy 1970')").Strings()
	moods      = app.Flag("mood", "Filter by mood (repeatable: -m slow -m weird)").Short('m').Enums("slow", "fast", "weird")
	list       = app.Flag("list", "List countries (optionally for the decade given as filter)").Short('l').Bool()
	one        = app.Flag("one", "Play one track and exit").Bool()
	configPath = app.Flag("config", "Path to config file (default: $XDG_CONFIG_HOME/radio/config.yaml)").Short('c').String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	os.Exit(run())
}

// run executes the command and returns the process exit code. Using a
// separate function ensures defer statements run before exiting.
func run() int {
	display := ui.New(os.Stdout, os.Stderr, nil)

	cfg, err := loadConfig()
	if err != nil {
		display.Error(err)
		return 1
	}

	closer, err := initLogger(cfg)
	if err != nil {
		display.Error(errors.Wrap(err, "failed to initialize logger"))
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := radiooooo.New(radiooooo.Config{
		BaseURL:          cfg.API.BaseURL,
		CountriesTimeout: cfg.CountriesTimeout(),
		PlayTimeout:      cfg.TrackTimeout(),
	})
	if err != nil {
		display.Error(err)
		return 1
	}

	zlog.Debug().Msgf("catalogue client created: base_url=%s", client.BaseURL())

	countries := directory.NewCache(client)

	if *list {
		err = listCountries(ctx, client, countries, display)
	} else {
		err = play(ctx, cfg, client, countries)
	}
	if err != nil {
		if ctx.Err() != nil {
			// Interrupted before the session took over.
			display.Farewell()
			return 0
		}
		zlog.Error().Msgf("radio failed: %v", err)
		display.Error(err)
		return 1
	}
	return 0
}

func loadConfig() (*config.Config, error) {
	path, required := *configPath, true
	if path == "" {
		path, required = config.DiscoverPath(), false
	}
	return config.LoadOptional(path, required)
}

func initLogger(cfg *config.Config) (io.Closer, error) {
	loggerConfig := logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	return logger.Init(loggerConfig)
}

func listCountries(ctx context.Context, client *radiooooo.Client, countries *directory.Cache, display *ui.Display) error {
	if len(*filters) > 1 {
		return errors.WithHint(errors.New("--list accepts at most one decade"), "Example: radio --list 1970")
	}

	dir, err := countries.Get(ctx)
	if err != nil {
		return err
	}

	if len(*filters) == 0 {
		display.Countries("All countries:", dir.Entries())
		return nil
	}

	decade, err := filter.ResolveDecade((*filters)[0])
	if err != nil {
		return err
	}

	byMood, err := client.GetCountriesByMood(ctx, decade)
	if err != nil {
		return errors.Wrapf(err, "failed to list countries for the %ds", decade)
	}

	var codes []string
	for _, moodCodes := range byMood {
		codes = append(codes, moodCodes...)
	}
	display.Countries(fmt.Sprintf("Countries with tracks in the %ds:", decade), dir.Subset(codes))
	return nil
}

func play(ctx context.Context, cfg *config.Config, client *radiooooo.Client, countries *directory.Cache) error {
	sel, dir, err := filter.NewResolver(countries).ResolveSession(ctx, *filters, *moods)
	if err != nil {
		return err
	}
	display := ui.New(os.Stdout, os.Stderr, dir.Name)

	candidates, err := player.NewCandidatesFromConfig(cfg)
	if err != nil {
		return errors.Wrap(err, "invalid player config")
	}
	launcher := player.NewLauncher(candidates, cfg.StopGrace())
	if _, _, err := launcher.Locate(); err != nil {
		return err
	}

	var input <-chan string
	if !*one {
		input = playback.ReadLines(os.Stdin)
	}

	controller := playback.NewController(
		source.New(client),
		playback.NewPlayerLauncher(launcher),
		display,
		input,
		playback.Config{PollInterval: cfg.PollInterval()},
	)
	zlog.Debug().Msgf("session created: id=%s", controller.SessionID())
	observed := controller.Observe(logEvent(controller.SessionID()))

	if *one {
		err = controller.RunOnce(ctx, sel)
	} else {
		display.Banner(sel)
		err = controller.Run(ctx, sel)
	}
	<-observed
	return err
}

// logEvent returns an observer that records session events in the log.
func logEvent(sessionID string) func(playback.Event) {
	return func(e playback.Event) {
		entry := zlog.Info().Str("session", sessionID).Str("state", e.State.String())
		if e.Track != nil {
			entry = entry.Str("artist", e.Track.Artist).Str("title", e.Track.Title)
		}
		entry.Msgf("event: %s", e.Type)
	}
}
