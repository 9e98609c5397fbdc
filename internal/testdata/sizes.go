package testdata

type Size struct {
	Name string
	N    int
}

// Sizes are the message lengths used by benchmarks. All of them are multiples of every supported cipher block size.
var Sizes []Size = []Size{
	{"16B", 16},
	{"64B", 64},
	{"1KiB", 1024},
	{"8KiB", 8 * 1024},
	{"64KiB", 64 * 1024},
	{"1MiB", 1024 * 1024},
}
