package vcs

import (
	"runtime/debug"
)

// Build is the VCS state stamped into the binary by the go tool.
type Build struct {
	Revision string
	Time     string
	Modified bool
}

func (b Build) String() string {
	if b.Revision == "" {
		return "unknown"
	}

	rev := b.Revision
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if b.Modified {
		rev += "-dirty"
	}

	return rev
}

func Read() Build {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return Build{}
	}

	return fromSettings(buildInfo.Settings)
}

func fromSettings(settings []debug.BuildSetting) Build {
	var b Build
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			b.Revision = s.Value
		case "vcs.time":
			b.Time = s.Value
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}

	return b
}
