package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/datepick/core"
	"github.com/jask/datepick/internal/config"
	"github.com/jask/datepick/internal/database"
	"github.com/jask/datepick/internal/database/repository"
	"github.com/jask/datepick/internal/service"
	"github.com/jask/datepick/internal/tui"
)

const usage = `usage: datepick [-config path] <command> [args]

commands:
  init [-force]        write the effective configuration to the config file
  pick                 choose a value interactively (default)
  eval <name>          evaluate a shortcut by name or preset key
  list [-yaml]         list shortcuts with their current bounds
  history [-n 10]      show recent selections
  clear                clear the stored selection
  export [-o file]     write the last selection as an iCalendar event
  reset [-all]         delete stored history of this picker (or all pickers)
`

// app carries what every command needs.
type app struct {
	cfg        config.Config
	configPath string
	store      service.SelectionStore
	maint      *service.MaintenanceService
	logger     *slog.Logger
	out        io.Writer
}

func main() {
	configPath := flag.String("config", "", "path to config.toml (default $DATEPICK_CONFIG or ~/.config/datepick/config.toml)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cmd, args := "pick", flag.Args()
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	if cmd == "init" {
		path, err := initConfig(cfg, *configPath, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "datepick: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("wrote", path)
		return
	}

	logger, closeLog, err := newLogger(cfg.Log, cmd == "pick")
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	slog.SetDefault(logger)

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	a := app{
		cfg:        cfg,
		configPath: *configPath,
		store:      repository.NewSelectionRepo(db),
		maint:      &service.MaintenanceService{DB: db},
		logger:     logger,
		out:        os.Stdout,
	}
	switch cfg.Mode() {
	case core.ModeSingle:
		err = run[core.Date](ctx, a, cmd, args)
	default:
		err = run[core.Range](ctx, a, cmd, args)
	}

	_ = db.Close()
	closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "datepick: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes text logs to stderr, or to the configured file while the
// TUI owns the terminal.
func newLogger(cfg config.LogConfig, interactive bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("log.level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch {
	case interactive && cfg.File != "":
		f, err := tea.LogToFile(cfg.File, "datepick")
		if err != nil {
			return nil, nil, err
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
	case interactive:
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
}

func run[V core.Variant](ctx context.Context, a app, cmd string, args []string) error {
	p, err := service.FromConfig[V](a.cfg, core.SystemClock, a.store, a.logger)
	if err != nil {
		return err
	}
	switch cmd {
	case "pick":
		return pick(ctx, a, p)
	case "eval":
		return eval(a, p, args)
	case "list":
		return list(ctx, a, p, args)
	case "history":
		return history(ctx, a, p, args)
	case "clear":
		return p.Clear(ctx)
	case "export":
		return export(ctx, a, p, args)
	case "reset":
		return reset(ctx, a, p.ID, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func pick[V core.Variant](ctx context.Context, a app, p *service.Picker[V]) error {
	m := tui.New(ctx, p)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := config.Watch(a.configPath, func(cfg config.Config, err error) {
		prog.Send(tui.ConfigChangedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		a.logger.Warn("config watch disabled", "err", err)
	}

	if _, err := prog.Run(); err != nil {
		return err
	}
	if v, ok := m.Committed(); ok {
		fmt.Fprintln(a.out, p.Format.Label(p.State.Mode(), v))
	}
	return nil
}

func eval[V core.Variant](a app, p *service.Picker[V], args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return errors.New("eval: shortcut name required")
	}
	v, s, err := p.Resolve(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", s.Name(), p.Format.Label(s.Mode(), v))
	for _, line := range boundLines(v) {
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func boundLines(v core.Value) []string {
	switch x := v.(type) {
	case core.Date:
		return []string{"date: " + x.Format(time.RFC3339)}
	case core.Range:
		return []string{"from: " + x.From.Format(time.RFC3339Nano), "to:   " + x.To.Format(time.RFC3339Nano)}
	}
	return nil
}

func list[V core.Variant](ctx context.Context, a app, p *service.Picker[V], args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	asYAML := fs.Bool("yaml", false, "print YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, _, err := p.Restore(ctx); err != nil {
		a.logger.Warn("restore failed", "err", err)
	}
	entries := p.Entries()
	if *asYAML {
		return service.WriteYAML(a.out, entries)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		mark := " "
		if e.Selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, e.Key, e.Name, e.Label)
	}
	return tw.Flush()
}

func history[V core.Variant](ctx context.Context, a app, p *service.Picker[V], args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	n := fs.Int("n", 10, "number of entries")
	if err := fs.Parse(args); err != nil {
		return err
	}
	recs, err := p.History(ctx, *n)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "no history")
		return nil
	}
	cal := p.State.Env().Calendar
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, r := range recs {
		label := "(cleared)"
		if !r.Cleared {
			label = p.Format.Label(p.State.Mode(), r.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cal.In(r.At).Format("2006-01-02 15:04"), label, r.Shortcut)
	}
	return tw.Flush()
}

func export[V core.Variant](ctx context.Context, a app, p *service.Picker[V], args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	outPath := fs.String("o", "", "output file (default stdout)")
	summary := fs.String("summary", "", "event summary (default the value's label)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, ok, err := p.Latest(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("export: no stored selection")
	}
	if *summary == "" {
		*summary = p.Format.Label(p.State.Mode(), v)
	}

	return writeTo(a.out, *outPath, createFile, func(w io.Writer) error {
		return service.WriteICS(w, v, *summary, p.State.Env())
	})
}

func createFile(path string) (io.WriteCloser, error) { return os.Create(path) }

// writeTo runs write against out, or against a file created at path. A
// failed close is reported when the write itself succeeded.
func writeTo(out io.Writer, path string, create func(string) (io.WriteCloser, error), write func(io.Writer) error) (err error) {
	if path == "" {
		return write(out)
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}

// initConfig saves cfg, the defaults merged with any environment overrides,
// unless a config file already exists and -force is not given.
func initConfig(cfg config.Config, configPath string, args []string) (string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	force := fs.Bool("force", false, "overwrite an existing config file")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	path := config.ResolvePath(configPath)
	if _, err := os.Stat(path); err == nil && !*force {
		return "", fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return "", err
	}
	return path, nil
}

func reset(ctx context.Context, a app, pickerID string, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	all := fs.Bool("all", false, "reset every picker")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *all {
		pickerID = ""
	}
	n, err := a.maint.Reset(ctx, pickerID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "removed %d entries\n", n)
	return nil
}
