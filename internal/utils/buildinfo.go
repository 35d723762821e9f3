package utils

import (
	"runtime/debug"
)

const (
	unknownVersion      = "unknown"
	develVersion        = "(devel)"
	revisionSettingKey  = "vcs.revision"
	modifiedSettingKey  = "vcs.modified"
	shortRevisionLength = 12
	dirtyRevisionSuffix = "-dirty"
)

// GetApplicationVersion reports the module version stamped by the Go toolchain.
// Development builds fall back to the VCS revision recorded in the build info.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	revision := ""
	modified := false
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += dirtyRevisionSuffix
	}
	return revision
}
