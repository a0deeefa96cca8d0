package app

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/danielbiegler/timebox/config"
	"github.com/danielbiegler/timebox/internal/timeutil"
	"github.com/danielbiegler/timebox/report"
	"github.com/danielbiegler/timebox/store"
)

var errMissingDescription = errors.New("a description argument is required")

// strategies assembles the persistence strategy set for the configured
// backend. All backends satisfy the same contracts, so the rest of the app
// never knows which one is in use.
func strategies(
	cfg *config.Config,
) (store.InitStrategy, store.LoadingStrategy, store.StorageStrategy) {
	if cfg.Storage.Backend == config.BackendBolt {
		path := cfg.DBFile()

		return &store.BoltInitStrategy{Path: path},
			&store.BoltLoadingStrategy{Path: path},
			&store.BoltStorageStrategy{Path: path}
	}

	path := cfg.StateFile()

	format := store.Compact
	if cfg.Storage.Pretty {
		format = store.Pretty
	}

	return &store.JSONInitStrategy{Path: path},
		&store.JSONLoadingStrategy{Path: path},
		&store.JSONStorageStrategy{Path: path, Format: format}
}

// openStore loads the configured store. The clock is frozen at the current
// instant for the whole invocation, so a note-then-end shorthand produces a
// single note.
func openStore(ctx *cli.Context) (store.Store, *config.Config, error) {
	cfg := config.Get(ctx)

	_, loading, storage := strategies(cfg)

	now := timeutil.NowUTC()

	s, err := store.NewInMemory(
		loading,
		storage,
		store.WithClock(func() time.Time { return now }),
	)
	if err != nil {
		return nil, nil, err
	}

	return s, cfg, nil
}

func description(ctx *cli.Context) (string, error) {
	desc := ctx.Args().First()
	if desc == "" {
		return "", errMissingDescription
	}

	return desc, nil
}

func initAction(ctx *cli.Context) error {
	cfg := config.Get(ctx)

	initStrategy, _, _ := strategies(cfg)

	if err := initStrategy.Init(); err != nil {
		return err
	}

	pterm.Success.Printfln("Initialized time tracking store in %s", cfg.Storage.Dir)

	return nil
}

func beginAction(ctx *cli.Context) error {
	desc, err := description(ctx)
	if err != nil {
		return err
	}

	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	box, err := s.Begin(desc)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Began a new time box at %s",
		box.StartTime().Local().Format(time.Kitchen),
	)

	return nil
}

func noteAction(ctx *cli.Context) error {
	desc, err := description(ctx)
	if err != nil {
		return err
	}

	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	if _, err := s.Note(desc); err != nil {
		return err
	}

	if ctx.Bool("end") {
		return endActive(s)
	}

	pterm.Success.Println("Noted")

	return nil
}

func amendAction(ctx *cli.Context) error {
	desc, err := description(ctx)
	if err != nil {
		return err
	}

	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	if _, err := s.Amend(desc); err != nil {
		return err
	}

	pterm.Success.Println("Amended the last note")

	return nil
}

func endAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	return endActive(s)
}

func endActive(s store.Store) error {
	box, err := s.End()
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Ended the time box after %.2f hours",
		box.DurationHours(),
	)

	return nil
}

func resumeAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	box, err := s.Resume()
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Resumed the time box started at %s",
		box.StartTime().Local().Format(time.Kitchen),
	)

	return nil
}

func cancelAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	if _, err := s.Cancel(); err != nil {
		return err
	}

	pterm.Success.Println("Canceled the active time box")

	return nil
}

func clearAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	count, err := s.Clear()
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Removed %d finished time boxes", count)

	return nil
}

func statusAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	box, err := s.Active()
	if err != nil {
		return err
	}

	if box == nil {
		return store.ErrNoActiveBox
	}

	report.PrintActive(os.Stdout, box, timeutil.NowUTC())

	return nil
}

// listOptions builds the list query from the command-line flags and the
// configured defaults.
func listOptions(ctx *cli.Context, cfg *config.Config) (store.ListOptions, error) {
	opts := store.NewListOptions()
	opts.Limit = cfg.List.Limit

	filter, err := store.ParseFilter(ctx.String("date"))
	if err != nil {
		return opts, err
	}

	opts.Filter = filter

	switch ctx.String("order") {
	case "descending", "desc":
		opts.Order = store.Descending
	default:
		opts.Order = store.Ascending
	}

	opts.Page = ctx.Uint("page")

	if ctx.Uint("limit") > 0 {
		opts.Limit = ctx.Uint("limit")
	}

	if ctx.Bool("all") {
		opts.Page = 0
		opts.Limit = math.MaxInt32
	}

	return opts, nil
}

func listAction(ctx *cli.Context) error {
	s, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}

	opts, err := listOptions(ctx, cfg)
	if err != nil {
		return err
	}

	result, err := s.List(opts)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		out, err := report.JSON(result.Items)
		if err != nil {
			return err
		}

		pterm.Println(out)

		return nil
	}

	if len(result.Items) == 0 {
		pterm.Warning.Println("No finished time boxes match")
		return nil
	}

	report.PrintBoxes(os.Stdout, result.Items)

	warnIfActive(s)

	return nil
}

func exportAction(ctx *cli.Context) error {
	s, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	result, err := s.List(store.ListOptions{Limit: math.MaxInt32})
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		pterm.Warning.Println(
			"Exporting did nothing because there are no finished time boxes",
		)
	}

	var out string

	switch strategy := ctx.Args().First(); strategy {
	case "", "csv":
		out, err = report.CSV(result.Items)
	case "json":
		out, err = report.JSON(result.Items)
	case "debug":
		out = report.Debug(result.Items)
	default:
		err = fmt.Errorf("unknown export strategy: %s", strategy)
	}

	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, out)

	warnIfActive(s)

	return nil
}

// warnIfActive reminds the user about an in-progress time box after
// read-only commands.
func warnIfActive(s store.Store) {
	box, err := s.Active()
	if err != nil || box == nil {
		return
	}

	pterm.Warning.Printfln(
		"There is an active time box, started at %s",
		box.StartTime().Local().Format(time.Kitchen),
	)
}
