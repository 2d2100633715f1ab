package registry

import "github.com/Masterminds/semver/v3"

// zeroVersion orders below every valid version.
var zeroVersion = semver.MustParse("0.0.0")

func parseVersion(raw string) *semver.Version {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return zeroVersion
	}
	return v
}

// supersedes reports whether a plugin (version, path) should replace an
// already registered plugin with the same name. The higher version wins;
// equal versions fall back to the lexically smaller path, so the outcome
// does not depend on discovery order.
func supersedes(version, path, curVersion, curPath string) bool {
	switch parseVersion(version).Compare(parseVersion(curVersion)) {
	case 1:
		return true
	case -1:
		return false
	}
	return path < curPath
}
