//go:build !linux && !darwin

package discover

import (
	"os"
	"time"
)

// lastChangeTime falls back to the content modification time where the platform
// does not expose a metadata change time.
func lastChangeTime(absolutePath string) (time.Time, error) {
	info, statError := os.Stat(absolutePath)
	if statError != nil {
		return time.Time{}, statError
	}
	return info.ModTime(), nil
}
