// Command classic hashes with MD5, encrypts with RC5, generates linear congruential sequences, and benchmarks all of
// it against modern primitives.
//
//	classic md5 [-s] [-b] [-t] [-c HASHFILE] -|FILE|STRING...
//	classic rc5 encrypt|decrypt [-m MODE] [-w BITS] [-r ROUNDS] [--key-size N] -k KEY [--hex] [-i IN] [-o OUT]
//	classic lcg -m MOD -a MUL [-c INC] [-s SEED] [-n COUNT] [-u]
//	classic bench [--size N]
//
// Every subcommand also accepts --config FILE and --log-level LEVEL. Settings are read from flags, then from
// CLASSIC_* environment variables, then from the config file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// env is everything a subcommand touches outside of its arguments.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *logrus.Logger
	v      *viper.Viper
}

type command struct {
	summary string
	flags   func(fs *pflag.FlagSet)
	run     func(e *env, fs *pflag.FlagSet) error
}

var commands = map[string]command{
	"md5":   {"print or check MD5 digests", md5Flags, runMD5},
	"rc5":   {"encrypt or decrypt with RC5", rc5Flags, runRC5},
	"lcg":   {"print a linear congruential sequence", lcgFlags, runLCG},
	"bench": {"compare throughput with other primitives", benchFlags, runBench},
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "-h", "--help", "help":
		usage(stdout)
		return exitOK
	}

	cmd, ok := commands[args[0]]
	if !ok {
		_, _ = fmt.Fprintf(stderr, "classic: unknown command %q\n\n", args[0])
		usage(stderr)
		return exitUsage
	}

	fs := pflag.NewFlagSet("classic "+args[0], pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	commonFlags(fs)
	cmd.flags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	v, log, err := configure(fs, stderr)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "classic: %v\n", err)
		return exitUsage
	}

	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, log: log, v: v}
	if err := cmd.run(e, fs); err != nil {
		log.WithField("command", args[0]).Debug(err)
		_, _ = fmt.Fprintf(stderr, "classic %s: %v\n", args[0], err)

		var ue usageError
		if errors.As(err, &ue) {
			return exitUsage
		}
		return exitFailure
	}

	return exitOK
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: classic <command> [flags] [args]")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Commands:")
	for _, name := range []string{"md5", "rc5", "lcg", "bench"} {
		_, _ = fmt.Fprintf(w, "  %-6s %s\n", name, commands[name].summary)
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Run `classic <command> --help` for a command's flags.")
}

// usageError marks errors caused by how the command was invoked rather than by what it was asked to do.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}
