package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/zephyrtronium/eel"
)

// errReported is returned by commands which have already written their
// diagnostics.
var errReported = errors.New("errors reported")

// CLI is the command line of eel.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Profile    string `default:"" enum:",cpu,mem,allocs,heap,block,mutex,trace" help:"Write a profile of the given kind." placeholder:"KIND"`
	ProfileDir string `default:"."                                              help:"Directory for profile output."       type:"path"`

	Config  string   `help:"YAML file declaring pools, variables, and functions." short:"c" type:"existingfile"`
	Quirks  []string `help:"Compatibility quirks to enable (${quirks})."          placeholder:"NAME"`
	Precise bool     `help:"Use correctly rounded exp, log, log10, pow, and sigmoid."`
	Seed    uint64   `help:"Seed for rand()."`

	Run   runCmd   `cmd:"" default:"withargs" help:"Evaluate programs."`
	Check checkCmd `cmd:""                    help:"Check programs for syntax errors."`
	Repl  replCmd  `cmd:""                    help:"Evaluate lines interactively."`
	Watch watchCmd `cmd:""                    help:"Evaluate a script each time it changes."`
}

// app is the state shared by commands once the command line is parsed.
type app struct {
	in   io.Reader
	out  io.Writer
	errw io.Writer
	log  *slog.Logger

	cfg    *Config
	quirks eel.Quirks
	opts   []eel.EnvOption
}

// newEnv creates an environment with the options from the command line and
// configuration file.
func (a *app) newEnv() *eel.Env {
	env := eel.NewEnv(a.opts...)
	a.cfg.init(env)
	return env
}

// parse parses src with the configured parse-time quirks.
func (a *app) parse(src string) (*eel.Program, error) {
	return eel.Parse(src, a.quirks)
}

// Run executes the eel command line with the given arguments. The exit
// function is called by kong after printing help or usage errors.
func Run(ctx context.Context, in io.Reader, out, errw io.Writer, exit func(int), args ...string) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("eel"),
		kong.Description("Evaluate programs in the EEL expression language."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(out, errw),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.ExplicitGroups([]kong.Group{cli.Log.group()}),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		kong.Vars{"quirks": strings.Join(eel.QuirkNames(), ", ")},
	)
	if err != nil {
		return err
	}
	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a := &app{in: in, out: out, errw: errw, log: cli.Log.logger(errw)}
	a.log.DebugContext(ctx, "logger initialized",
		slog.String("level", cli.Log.Level),
		slog.String("format", cli.Log.Format),
	)
	if err := cli.configure(a); err != nil {
		return err
	}

	if cli.Profile != "" {
		defer profile.Start(profileMode(cli.Profile), profile.ProfilePath(cli.ProfileDir), profile.Quiet).Stop()
	}
	return ktx.Run(a)
}

// configure loads the configuration file and folds it together with flags
// into a's environment options. Flags take precedence.
func (cli *CLI) configure(a *app) error {
	cfg := new(Config)
	if cli.Config != "" {
		c, err := loadConfig(cli.Config)
		if err != nil {
			return err
		}
		cfg = c
	}
	a.cfg = cfg
	names := append(append([]string(nil), cfg.Quirks...), cli.Quirks...)
	for _, name := range names {
		q, ok := eel.ParseQuirk(name)
		if !ok {
			return errors.New("unknown quirk " + name)
		}
		a.quirks |= q
	}
	opts, err := cfg.envOptions()
	if err != nil {
		return err
	}
	opts = append(opts, a.quirks, eel.Logger(a.log))
	if cli.Precise {
		opts = append(opts, eel.PreciseMath())
	}
	if cli.Seed != 0 {
		opts = append(opts, eel.Seed(cli.Seed))
	}
	a.opts = opts
	return nil
}

var profileModes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"allocs": profile.MemProfileAllocs,
	"heap":   profile.MemProfileHeap,
	"block":  profile.BlockProfile,
	"mutex":  profile.MutexProfile,
	"trace":  profile.TraceProfile,
}

func profileMode(name string) func(*profile.Profile) {
	if m, ok := profileModes[name]; ok {
		return m
	}
	return profile.CPUProfile
}
