// Package buildinfo reports which build of sciviewer is running.
//
// Release builds stamp the variables through ldflags:
//
//	go build -ldflags "-X github.com/JRJacoby/SciViewer/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/JRJacoby/SciViewer/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/JRJacoby/SciViewer/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" \
//	    ./cmd/sciviewer
//
// A binary installed with "go install" carries no ldflags; for those the
// module version and VCS stamp embedded by the toolchain are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var fillOnce sync.Once

// fill replaces unset variables with what the toolchain recorded.
func fill() {
	fillOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		if Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && Commit == "none":
				Commit = s.Value
			case s.Key == "vcs.time" && Date == "unknown":
				Date = s.Value
			}
		}
	})
}

// Resolved returns the version, filling it from the embedded module
// information when no ldflags were given.
func Resolved() string {
	fill()
	return Version
}

// Template is the cobra version template: "sciviewer version X" followed by
// the commit and build date.
func Template() string {
	fill()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
