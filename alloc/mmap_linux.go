package alloc

import (
	"errors"

	"golang.org/x/sys/unix"

	"github.com/wippyai/stackcore"
)

const mmapFlags = unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_NORESERVE

// checkVMALimit adds a hint when ENOMEM is likely caused by the map count limit.
func checkVMALimit(rep stackcore.Reporter, err error) {
	if !errors.Is(err, unix.ENOMEM) {
		return
	}
	rep.Error(stackcore.ENOMEM, "the previous error may have been caused by a low memory map limit.\n"+
		"  On Linux this can be controlled by increasing the vm.max_map_count. For example:\n"+
		"  > sudo sysctl -w vm.max_map_count=1000000\n")
}
