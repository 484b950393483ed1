package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These are variables so that they can be set during the build time.
var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

// BaseVersion returns the major and minor version, for example "v1.7",
// or "unknown" when the build version is not semver.
func BaseVersion() string {
	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return "unknown"
	}

	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

// Full describes the build for the --version flag.
func Full() string {
	return fmt.Sprintf("storyblocks %s (%s) on %s", BuildVersion, Commit, BuildDate)
}
