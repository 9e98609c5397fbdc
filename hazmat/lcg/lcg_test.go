package lcg_test

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/codahale/classic/hazmat/lcg"
)

func TestNew(t *testing.T) {
	if _, err := lcg.New(0, 7, 0, 1); !errors.Is(err, lcg.ErrZeroModulus) {
		t.Errorf("New(0, ...) err = %v, want ErrZeroModulus", err)
	}
}

func TestGenerator_Take(t *testing.T) {
	for _, tc := range []struct {
		name       string
		m, a, c, x uint64
		n          int
		want       []uint64
		unique     int
	}{
		{"lecture", 32, 7, 0, 1, 5, []uint64{7, 17, 23, 1, 7}, 4},
		{"period 88", 2047, 243, 1, 4, 1000, nil, 88},
		{"ZX81", 65537, 75, 74, 0, 100000, nil, 65536},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, err := lcg.New(tc.m, tc.a, tc.c, tc.x)
			if err != nil {
				t.Fatal(err)
			}

			got := g.Take(tc.n)
			if tc.want != nil && !slices.Equal(got, tc.want) {
				t.Errorf("Take(%d) = %v, want %v", tc.n, got, tc.want)
			}
			if got, want := lcg.Unique(got), tc.unique; got != want {
				t.Errorf("Unique = %d, want %d", got, want)
			}
		})
	}
}

func TestGenerator_Next(t *testing.T) {
	t.Run("starts after seed", func(t *testing.T) {
		g, _ := lcg.New(2047, 243, 1, 4)
		if got, want := g.Next(), uint64(973); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	})

	t.Run("no overflow", func(t *testing.T) {
		g, _ := lcg.New(math.MaxUint64, math.MaxUint64-1, math.MaxUint64-1, math.MaxUint64-1)
		// (m-1)(m-1) + (m-1) = m(m-1) ≡ 0 (mod m)
		if got := g.Next(); got != 0 {
			t.Errorf("Next() = %d, want 0", got)
		}
	})

	t.Run("results below modulus", func(t *testing.T) {
		g, _ := lcg.New(1000, 1<<40, 1<<50, 12345)
		for range 100 {
			if v := g.Next(); v >= 1000 {
				t.Fatalf("Next() = %d, want < 1000", v)
			}
		}
	})
}

func TestGenerator_Values(t *testing.T) {
	g1, _ := lcg.New(32, 7, 0, 1)
	g2, _ := lcg.New(32, 7, 0, 1)

	var got []uint64
	for v := range g1.Values() {
		got = append(got, v)
		if len(got) == 10 {
			break
		}
	}

	if want := g2.Take(10); !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func ExampleGenerator_Take() {
	g, err := lcg.New(32, 7, 0, 1)
	if err != nil {
		panic(err)
	}

	seq := g.Take(5)
	fmt.Println(seq, lcg.Unique(seq))

	// Output:
	// [7 17 23 1 7] 4
}
