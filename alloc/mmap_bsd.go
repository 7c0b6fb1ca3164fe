//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package alloc

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/stackcore"
)

const mmapFlags = unix.MAP_PRIVATE | unix.MAP_ANON

func checkVMALimit(stackcore.Reporter, error) {}
