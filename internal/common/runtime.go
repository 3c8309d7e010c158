package common

import (
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

var (
	// BuildCommit is the short hash of the commit the binary was built from.
	BuildCommit = "HEAD"

	// BuildTime is the commit timestamp of that commit.
	BuildTime = "N/A"

	// BuildGoVersion carries the Go version the binary was built with.
	BuildGoVersion string
)

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	BuildGoVersion = bi.GoVersion

	for _, bs := range bi.Settings {
		switch bs.Key {
		case "vcs.revision":
			if len(bs.Value) > 6 {
				BuildCommit = bs.Value[0:6]
			}
		case "vcs.time":
			BuildTime = bs.Value
		}
	}
}

// BuildHook stamps every log entry with the commit and timestamp the
// binary was built from.
type BuildHook struct {
}

func (h *BuildHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.DebugLevel,
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}
}

func (h *BuildHook) Fire(e *logrus.Entry) error {
	e.Data["build_commit"] = BuildCommit
	e.Data["build_time"] = BuildTime

	return nil
}
