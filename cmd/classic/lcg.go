package main

import (
	"bufio"
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/codahale/classic/hazmat/lcg"
)

func lcgFlags(fs *pflag.FlagSet) {
	fs.StringP("modulus", "m", "", "modulus, as `N`, B^P, or B^P-K")
	fs.StringP("multiplier", "a", "", "multiplier, as `N`, B^P, or B^P-K")
	fs.StringP("increment", "c", "0", "increment, as `N`, B^P, or B^P-K")
	fs.StringP("seed", "s", "1", "seed, as `N`, B^P, or B^P-K")
	fs.IntP("count", "n", 10, "number of values to print")
	fs.BoolP("unique", "u", false, "also print the number of distinct values")
}

func runLCG(e *env, fs *pflag.FlagSet) error {
	var vals [4]uint64
	for i, name := range []string{"modulus", "multiplier", "increment", "seed"} {
		s, _ := fs.GetString(name)
		if s == "" {
			return usagef("--%s is required", name)
		}

		v, err := parseExpr(s)
		if err != nil {
			return usagef("--%s: %v", name, err)
		}
		vals[i] = v
	}

	count, _ := fs.GetInt("count")
	if count < 0 {
		return usagef("--count must not be negative")
	}

	g, err := lcg.New(vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return usageError{err}
	}

	e.log.WithFields(logrus.Fields{
		"m": vals[0], "a": vals[1], "c": vals[2], "seed": vals[3], "count": count,
	}).Debug("generating")

	seq := g.Take(count)
	w := bufio.NewWriter(e.stdout)
	for i, v := range seq {
		if i > 0 {
			_ = w.WriteByte(' ')
		}
		_, _ = w.WriteString(strconv.FormatUint(v, 10))
	}
	_ = w.WriteByte('\n')

	if unique, _ := fs.GetBool("unique"); unique {
		_, _ = fmt.Fprintf(w, "unique: %d of %d\n", lcg.Unique(seq), len(seq))
	}
	return w.Flush()
}

// parseExpr parses N, B^P, or B^P-K into a uint64, rejecting values that overflow.
func parseExpr(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	base, rest, isPow := strings.Cut(s, "^")
	if !isPow {
		return strconv.ParseUint(s, 10, 64)
	}

	exp, sub, hasSub := strings.Cut(rest, "-")

	b, err := strconv.ParseUint(base, 10, 64)
	if err != nil {
		return 0, err
	}
	p, err := strconv.ParseUint(exp, 10, 64)
	if err != nil {
		return 0, err
	}

	v, err := pow(b, p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s, err)
	}

	if hasSub {
		k, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return 0, err
		}
		if k > v {
			return 0, fmt.Errorf("%s is negative", s)
		}
		v -= k
	}
	return v, nil
}

// pow returns b^p, or an error if it does not fit in 64 bits.
func pow(b, p uint64) (uint64, error) {
	switch {
	case p == 0:
		return 1, nil
	case b <= 1:
		return b, nil
	}

	v := uint64(1)
	for range p {
		hi, lo := bits.Mul64(v, b)
		if hi != 0 {
			return 0, errOverflow
		}
		v = lo
	}
	return v, nil
}

var errOverflow = errors.New("overflows 64 bits")
