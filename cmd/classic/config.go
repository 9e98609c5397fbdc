package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codahale/classic"
)

// Configuration keys, and the flags bound to them where a subcommand defines one.
var bindings = map[string]string{
	"log.level":    "log-level",
	"rc5.word":     "word",
	"rc5.rounds":   "rounds",
	"rc5.key-size": "key-size",
	"rc5.mode":     "mode",
}

func commonFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "read settings from a YAML, TOML, or JSON file")
	fs.String("log-level", "warn", "log level (debug, info, warn, error)")
}

// configure layers flags over CLASSIC_* environment variables over the optional config file over defaults, and builds
// a logger writing to stderr.
func configure(fs *pflag.FlagSet, stderr io.Writer) (*viper.Viper, *logrus.Logger, error) {
	v := viper.New()
	v.SetDefault("log.level", "warn")
	v.SetDefault("rc5.word", classic.DefaultParams.WordSize)
	v.SetDefault("rc5.rounds", classic.DefaultParams.Rounds)
	v.SetDefault("rc5.key-size", classic.DefaultParams.KeySize)
	v.SetDefault("rc5.mode", classic.CBC.String())

	v.SetEnvPrefix("CLASSIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range bindings {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, err
			}
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("reading config: %w", err)
		}
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	level, err := logrus.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(level)

	return v, log, nil
}

// params reads the RC5 parameters and mode from v.
func params(v *viper.Viper) (classic.Params, classic.Mode, error) {
	p := classic.Params{
		WordSize: v.GetInt("rc5.word"),
		Rounds:   v.GetInt("rc5.rounds"),
		KeySize:  v.GetInt("rc5.key-size"),
	}
	if err := p.Validate(); err != nil {
		return p, 0, usageError{err}
	}

	mode, err := classic.ParseMode(v.GetString("rc5.mode"))
	if err != nil {
		return p, 0, usageError{err}
	}

	return p, mode, nil
}
