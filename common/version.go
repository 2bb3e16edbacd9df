package common

import (
	"runtime/debug"
	"time"
)

// StartTime is when the process started.
var StartTime = time.Now()

// Uptime returns how long the process has been running, rounded to the second.
func Uptime() time.Duration {
	return time.Since(StartTime).Round(time.Second)
}

// Version returns the module version, or the VCS revision for development builds.
func Version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "UNKNOWN"
	}

	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				s.Value = s.Value[:12]
			}
			return s.Value
		}
	}

	if bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "UNKNOWN"
}
