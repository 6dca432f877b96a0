package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tartampluch/go-panchanga/internal/cache"
	"github.com/tartampluch/go-panchanga/internal/calendar"
	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/contacts"
	"github.com/tartampluch/go-panchanga/internal/engine"
	"github.com/tartampluch/go-panchanga/internal/ephemeris"
	"github.com/tartampluch/go-panchanga/internal/geocode"
	"github.com/tartampluch/go-panchanga/internal/render"
	"github.com/tartampluch/go-panchanga/internal/server"
)

// app carries the global flags and the resources opened for one invocation.
type app struct {
	out io.Writer

	configPath string
	debug      bool
	logFormat  string

	settings config.Settings
	closers  []io.Closer
}

// deps are the wired services shared by the subcommands.
type deps struct {
	engine   *engine.Engine
	renderer *render.Renderer
	exporter calendar.Exporter
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

// setup installs logging and loads the settings file.
func (a *app) setup() error {
	if c := setupLogging(a.debug, a.logFormat); c != nil {
		a.closers = append(a.closers, c)
	}
	logStartupInfo()

	s, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

// build wires cache -> geocoder -> engine -> renderer from the settings.
func (a *app) build(ctx context.Context, lang string) (*deps, error) {
	s := a.settings

	store, err := cache.New(ctx, s.Cache, config.LookupPassword(s.Cache.RedisUser))
	if err != nil {
		// A broken cache never blocks a chart.
		slog.Warn(config.MsgCacheFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyBackend, s.Cache.Backend,
			config.LogKeyError, err,
		)
		store = cache.NewNullCache()
	}
	a.closers = append(a.closers, store)

	nominatim := geocode.NewNominatim(s.Geocoder.URL, s.Geocoder.Timeout.Duration)
	if zones, err := geocode.NewTZFinder(); err == nil {
		nominatim.Zones = zones
	} else {
		slog.Warn(config.MsgZoneDataFail,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}
	geo := geocode.NewCached(nominatim, store, s.Cache.TTL.Duration)

	t := s.Transitions
	finders, err := engine.NewFinders(t.Tithi, t.Nakshatra, t.Yoga, t.Karana)
	if err != nil {
		return nil, err
	}

	eng := engine.New(ephemeris.New(), geo,
		engine.WithFinders(finders),
		engine.WithDefaultTimezone(s.DefaultTimezone),
	)

	if lang == "" {
		lang = s.Language
	}
	exporter := calendar.Exporter{
		Clock:           engine.RealClock{},
		ReminderTrigger: s.Calendar.ReminderTrigger,
	}
	return &deps{
		engine:   eng,
		renderer: render.New(render.NewTranslator(lang), exporter),
		exporter: exporter,
	}, nil
}

// newRootCmd builds the command tree.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          config.CommandName,
		Short:        config.CmdShortRoot,
		Long:         config.CmdLongRoot,
		Version:      config.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetVersionTemplate(fmt.Sprintf(config.VersionTemplate, config.CommandName, config.Version, config.Commit, config.Date))

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)
	pf.StringVar(&a.logFormat, config.FlagLogFormat, config.LogFormatText, config.FlagDescLogFormat)

	root.AddCommand(newChartCmd(a), newBatchCmd(a), newServeCmd(a))
	return root
}

func newChartCmd(a *app) *cobra.Command {
	var (
		req          engine.ChartRequest
		offset       float64
		format, lang string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: config.CmdShortChart,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := a.build(ctx, lang)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed(config.FlagOffset) {
				req.Offset = &offset
			}
			if !cmd.Flags().Changed(config.FlagTime) {
				slog.Info(config.MsgNoBirthClock,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyName, req.Name,
				)
			}

			rec, err := d.engine.ComputeChart(ctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrChartFailed, err)
			}
			return a.write(ctx, d.renderer, output, format, rec)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, config.FlagName, config.FallbackName, config.FlagDescName)
	f.StringVar(&req.Date, config.FlagDate, "", config.FlagDescDate)
	f.StringVar(&req.Time, config.FlagTime, config.NoonTime, config.FlagDescTime)
	f.StringVar(&req.Place, config.FlagPlace, "", config.FlagDescPlace)
	f.StringVar(&req.Timezone, config.FlagTZ, "", config.FlagDescTZ)
	f.Float64Var(&offset, config.FlagOffset, 0, config.FlagDescOffset)
	f.StringVar(&format, config.FlagFormat, config.FormatText, config.FlagDescFormat)
	f.StringVar(&lang, config.FlagLang, "", config.FlagDescLang)
	f.StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutput)
	_ = cmd.MarkFlagRequired(config.FlagDate)
	_ = cmd.MarkFlagRequired(config.FlagPlace)
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var source, user, format, lang, output string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: config.CmdShortBatch,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := a.build(ctx, lang)
			if err != nil {
				return err
			}
			if source == "" {
				source, user = a.settings.Server.Source, a.settings.Server.SourceUser
			}

			records, err := loadCharts(ctx, d.engine, source, user)
			if err != nil {
				return err
			}

			if fi, err := os.Stat(output); err == nil && fi.IsDir() {
				return a.writeEach(ctx, d.renderer, output, format, records)
			}
			return a.write(ctx, d.renderer, output, format, records...)
		},
	}

	f := cmd.Flags()
	f.StringVar(&source, config.FlagSource, "", config.FlagDescSource)
	f.StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	f.StringVar(&format, config.FlagFormat, config.FormatICS, config.FlagDescFormat)
	f.StringVar(&lang, config.FlagLang, "", config.FlagDescLang)
	f.StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutput)
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var port, source, user string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.build(cmd.Context(), "")
			if err != nil {
				return err
			}
			s := a.settings.Server
			if port == "" {
				port = s.Port
			}
			if source == "" {
				source, user = s.Source, s.SourceUser
			}

			srv := server.NewChartServer(port, d.engine, d.renderer)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return srv.Start(ctx) })

			if source == "" {
				slog.Info(config.MsgFeedDisabled, config.LogKeyComponent, config.CompServer)
				srv.Update([]byte(config.StubVCalendar))
			} else {
				feed := func(ctx context.Context) ([]byte, error) {
					records, err := loadCharts(ctx, d.engine, source, user)
					if err != nil {
						return nil, err
					}
					return d.exporter.Export(ctx, records)
				}
				g.Go(func() error {
					srv.RefreshWorker(ctx, time.Duration(s.RefreshEvery)*time.Minute, feed)
					return nil
				})
			}
			return g.Wait()
		},
	}

	f := cmd.Flags()
	f.StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	f.StringVar(&source, config.FlagSource, "", config.FlagDescSource)
	f.StringVar(&user, config.FlagUser, "", config.FlagDescUser)
	return cmd
}

// loadCharts reads the vCard source and computes a chart per usable contact.
func loadCharts(ctx context.Context, eng contacts.ChartComputer, source, user string) ([]*engine.BirthChartRecord, error) {
	rc, err := contacts.Open(ctx, contacts.NewHTTPFetcher(), source, user, config.LookupPassword(user))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	profiles, _, err := contacts.Decode(ctx, rc)
	if err != nil {
		return nil, err
	}

	records, failures, err := contacts.Batch{Engine: eng, Parallel: config.DefaultBatchParallel}.Run(ctx, profiles)
	if err != nil {
		return nil, err
	}
	slog.Info(config.MsgBatchDone,
		config.LogKeyComponent, config.CompMain,
		config.LogKeySource, source,
		config.LogKeyCharts, len(records),
		config.LogKeyFailed, len(failures),
	)
	return records, nil
}

// write renders records to path, or to stdout when path is empty.
func (a *app) write(ctx context.Context, r *render.Renderer, path, format string, records ...*engine.BirthChartRecord) error {
	if path == "" {
		return r.Write(ctx, a.out, format, records...)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return err
	}
	if err := r.Write(ctx, f, format, records...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info(config.MsgOutputWritten,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, path,
		config.LogKeyCharts, len(records),
	)
	return nil
}

// writeEach writes one file per record into dir, named <slug>_<stamp>.<format>.
func (a *app) writeEach(ctx context.Context, r *render.Renderer, dir, format string, records []*engine.BirthChartRecord) error {
	ext := strings.ToLower(format)
	if ext == config.FormatText {
		ext = "txt"
	}
	for _, rec := range records {
		slug := contacts.Slug(rec.Name)
		if slug == "" {
			slug = rec.ID.String()
		}
		name := fmt.Sprintf(config.FormatExportName, slug, rec.Instant.Local.Format(config.FormatFileStamp), ext)
		if err := a.write(ctx, r, filepath.Join(dir, name), format, rec); err != nil {
			return err
		}
	}
	return nil
}
