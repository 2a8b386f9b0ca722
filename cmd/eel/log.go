package main

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"
)

type logConfig struct {
	Level  string `default:"warn" enum:"debug,info,warn,error" help:"Set log level."`
	Format string `default:"text" enum:"json,text"             help:"Set log format."`
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

func (f *logConfig) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(f.Level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// logger creates a logger writing to w.
func (f *logConfig) logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: f.level()}
	var h slog.Handler
	switch f.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}
