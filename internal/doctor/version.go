package doctor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// versionPattern finds the first dotted version in free-form --version
// output such as "git version 2.43.0" or "pipenv, version 2023.12.1".
var versionPattern = regexp.MustCompile(`v?\d+(\.\d+){1,2}([-+][0-9A-Za-z.-]+)?`)

// ExtractVersion returns the first version found in out.
func ExtractVersion(out string) (string, bool) {
	m := versionPattern.FindString(out)
	if m == "" {
		return "", false
	}
	return strings.TrimPrefix(m, "v"), true
}

// AtLeast reports whether actual >= minimum. A leading "v" on either side is
// ignored.
func AtLeast(actual, minimum string) (bool, error) {
	av, err := parseSemver(actual)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", actual, err)
	}
	mv, err := parseSemver(minimum)
	if err != nil {
		return false, fmt.Errorf("parsing minimum version %q: %w", minimum, err)
	}
	return av.Compare(mv) >= 0, nil
}

func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
