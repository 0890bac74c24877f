package contracts

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	// Version is the release of the dashboard and its CLI.
	Version = "0.3.0"

	// DataFormatVersion tags the layout of the prepared views and the workbook export.
	DataFormatVersion = "v1"

	// APIVersion tags the JSON chart API.
	APIVersion = "v1"
)

// Stamped with -ldflags "-X nucdash/pkg/contracts.Revision=... -X nucdash/pkg/contracts.BuildTime=...".
// When left empty the values recorded by the go toolchain are used instead.
var (
	Revision  string
	BuildTime string
)

const unknown = "unknown"

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version      string `json:"version"`
	Revision     string `json:"revision"`
	BuildTime    string `json:"build_time"`
	Modified     bool   `json:"modified,omitempty"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
	DataFormat   string `json:"data_format"`
	APIVersion   string `json:"api_version"`
}

// GetVersionInfo merges the linker stamps with the module build info.
func GetVersionInfo() VersionInfo {
	bi, _ := debug.ReadBuildInfo()
	return versionInfo(bi, Revision, BuildTime)
}

func versionInfo(bi *debug.BuildInfo, revision, buildTime string) VersionInfo {
	info := VersionInfo{
		Version:      Version,
		Revision:     revision,
		BuildTime:    buildTime,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		DataFormat:   DataFormatVersion,
		APIVersion:   APIVersion,
	}
	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Revision == "" {
					info.Revision = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	if info.Revision == "" {
		info.Revision = unknown
	}
	if info.BuildTime == "" {
		info.BuildTime = unknown
	}
	return info
}

// ShortRevision trims a vcs hash to twelve characters.
func (v VersionInfo) ShortRevision() string {
	if len(v.Revision) > 12 && v.Revision != unknown {
		return v.Revision[:12]
	}
	return v.Revision
}

// IsPrerelease reports whether Version carries a semver pre-release suffix.
func IsPrerelease() bool {
	return strings.Contains(Version, "-")
}

// GetVersionString returns "nucdash v<version>".
func GetVersionString() string {
	return "nucdash v" + Version
}

// GetFullVersionString is the --version output of the CLI.
func GetFullVersionString() string {
	info := GetVersionInfo()
	rev := info.ShortRevision()
	if info.Modified {
		rev += "+dirty"
	}
	return fmt.Sprintf("%s (%s, built %s, %s %s/%s)",
		GetVersionString(), rev, info.BuildTime, info.GoVersion, info.OS, info.Architecture)
}
