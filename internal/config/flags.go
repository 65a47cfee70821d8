package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/blogkeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   driver: postgres or sqlite
//	-d string   database DSN
//	-o int      max open connections
//	-t int      connection max lifetime, minutes
//	-b string   log backend: slog or zap
//	-v string   log level
//	-a string   association policy: diff or replace
//	-w string   writer delete policy: soft or hard
//	-p string   post delete policy
//	-l string   label delete policy
func parseFlags(config *Config) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Driver, "r", config.Driver, "database driver (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "o", config.MaxOpenConns, "max open connections")
	lifetime := fs.Int("t", int(config.ConnMaxLifetime.Minutes()), "connection max lifetime (in minutes)")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend (slog|zap)")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.AssociationPolicy, "a", config.AssociationPolicy, "label association policy (diff|replace)")
	fs.StringVar(&config.WriterDeletePolicy, "w", config.WriterDeletePolicy, "writer delete policy (soft|hard)")
	fs.StringVar(&config.PostDeletePolicy, "p", config.PostDeletePolicy, "post delete policy (soft|hard)")
	fs.StringVar(&config.LabelDeletePolicy, "l", config.LabelDeletePolicy, "label delete policy (soft|hard)")

	if err := flagx.ParseOwn(fs, os.Args[1:]); err != nil {
		panic(err)
	}

	// -t only overrides the lifetime when given; a JSON value may be finer
	// than a minute.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.ConnMaxLifetime = time.Duration(*lifetime) * time.Minute
		}
	})
}
