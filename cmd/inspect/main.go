package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/wippyai/stackcore/align"
	"github.com/wippyai/stackcore/alloc"
	"github.com/wippyai/stackcore/diag"
	"github.com/wippyai/stackcore/errors"
	"github.com/wippyai/stackcore/guard"
	"github.com/wippyai/stackcore/region"
)

func main() {
	var (
		alignArg    = flag.String("align", "", "Align a value: x,d")
		cookie      = flag.Bool("cookie", false, "Initialize a guard cookie and check a round trip")
		stackSize   = flag.Int("stack", 0, "Stack region size in bytes (0 = default)")
		gapSize     = flag.Int("gap", -1, "Gap size in bytes (-1 = default)")
		commit      = flag.Int("commit", 0, "Initial commit in bytes (0 = one page)")
		reserve     = flag.Bool("reserve", false, "Reserve a region with the configured layout and print it")
		interactive = flag.Bool("i", false, "Interactive alignment calculator")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := region.DefaultConfig()
	if *stackSize > 0 {
		cfg.StackSize = *stackSize
	}
	if *gapSize >= 0 {
		cfg.GapSize = *gapSize
	}
	cfg.InitialCommit = *commit

	if err := run(*alignArg, *cookie, *reserve, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(alignArg string, cookie, reserve bool, cfg region.Config) error {
	strategy := "xor"
	if guard.Transparent {
		strategy = "pass-through"
	}
	fmt.Printf("Guard strategy: %s\n", strategy)

	norm, err := cfg.Normalize()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	fmt.Printf("Region config: %s (usable %d)\n", norm, norm.Usable())

	if alignArg != "" {
		x, d, err := parseAlign(alignArg)
		if err != nil {
			return err
		}
		fmt.Printf("\nalign up(%d, %d)   = %d\n", x, d, align.Up(x, d))
		fmt.Printf("align down(%d, %d) = %d\n", x, d, align.Down(x, d))
	}

	if cookie {
		c, err := guard.Init(nil)
		if err != nil {
			return fmt.Errorf("cookie: %w", err)
		}
		var jb guard.JmpBuf
		jb.Save(c, 0x401000, 0x7ffe0000)
		ip, sp := jb.Restore(c)
		rawIP, rawSP := jb.Raw()
		fmt.Printf("\nSaved ip=%#x sp=%#x\n", uintptr(0x401000), uintptr(0x7ffe0000))
		fmt.Printf("Stored ip=%#x sp=%#x\n", uintptr(rawIP), uintptr(rawSP))
		fmt.Printf("Restored ip=%#x sp=%#x\n", ip, sp)
	}

	if reserve {
		m := alloc.NewMmap(diag.Default())
		r, err := region.Reserve(m, cfg)
		if err != nil {
			return fmt.Errorf("reserve: %w", err)
		}
		defer r.Release(m)
		fmt.Printf("\nStack limit=%#x base=%#x size=%d committed=%d\n", r.Limit(), r.Base(), r.Size(), r.Committed())
	}

	return nil
}

func parseAlign(s string) (x, d int64, err error) {
	xs, ds, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("align: expected x,d, got %q", s)
	}
	x, err = strconv.ParseInt(strings.TrimSpace(xs), 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("align: value: %w", err)
	}
	d, err = strconv.ParseInt(strings.TrimSpace(ds), 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("align: divisor: %w", err)
	}
	if x < 0 || d < 0 {
		return 0, 0, fmt.Errorf("align: value and divisor must not be negative")
	}
	if d > 0 && x > math.MaxInt64-d+1 {
		return 0, 0, errors.Overflow(errors.PhaseAlign, []string{"align", "x"}, x, fmt.Sprintf("int64 when rounded up to %d", d))
	}
	return x, d, nil
}
