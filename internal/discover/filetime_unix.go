//go:build linux || darwin

package discover

import (
	"time"

	"golang.org/x/sys/unix"
)

// lastChangeTime returns the later of the content modification time and the
// metadata change time of a file.
func lastChangeTime(absolutePath string) (time.Time, error) {
	var status unix.Stat_t
	if statError := unix.Stat(absolutePath, &status); statError != nil {
		return time.Time{}, statError
	}
	modifiedAt := time.Unix(status.Mtim.Unix())
	changedAt := time.Unix(status.Ctim.Unix())
	if changedAt.After(modifiedAt) {
		return changedAt, nil
	}
	return modifiedAt, nil
}
