package region

import (
	"fmt"
	"os"

	"github.com/wippyai/stackcore/align"
	"github.com/wippyai/stackcore/errors"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
)

// Config describes the layout of one stack region.
// Sizes are rounded up to the page size by Normalize.
type Config struct {
	// PageSize is the commit granularity. 0 means the OS page size.
	PageSize int
	// StackSize is the reserved size of a region, gaps included.
	StackSize int
	// GapSize is the no-access gap at each end of the region.
	GapSize int
	// InitialCommit is the part of the stack, measured from its base, that is
	// accessible before it starts to grow. 0 means one page.
	InitialCommit int
}

// DefaultConfig returns an 8MiB region with 64KiB gaps.
func DefaultConfig() Config {
	return Config{
		StackSize: 8 * MiB,
		GapSize:   64 * KiB,
	}
}

// Normalize fills in defaults and rounds every size up to the page size.
func (c Config) Normalize() (Config, error) {
	if c.PageSize < 0 || c.StackSize < 0 || c.GapSize < 0 || c.InitialCommit < 0 {
		return c, errors.InvalidInput(errors.PhaseConfig, "sizes must not be negative")
	}
	if c.PageSize == 0 {
		c.PageSize = os.Getpagesize()
	}
	if c.StackSize == 0 {
		c.StackSize = DefaultConfig().StackSize
	}

	c.StackSize = align.Up(c.StackSize, c.PageSize)
	c.GapSize = align.Up(c.GapSize, c.PageSize)
	if c.InitialCommit == 0 {
		c.InitialCommit = c.PageSize
	} else {
		c.InitialCommit = align.Up(c.InitialCommit, c.PageSize)
	}

	if 2*c.GapSize >= c.StackSize {
		return c, errors.New(errors.PhaseConfig, errors.KindOutOfBounds).
			Path("config", "gap_size").
			Value(c.GapSize).
			Detail("gaps of %d bytes leave no room in a %d byte stack", c.GapSize, c.StackSize).
			Build()
	}
	c.InitialCommit = min(c.InitialCommit, c.Usable())
	return c, nil
}

// Usable returns the stack size without the gaps.
func (c Config) Usable() int {
	return c.StackSize - 2*c.GapSize
}

func (c Config) String() string {
	return fmt.Sprintf("page=%d stack=%d gap=%d commit=%d", c.PageSize, c.StackSize, c.GapSize, c.InitialCommit)
}
