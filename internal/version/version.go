package version

// Version is the current commit-wizard release.
// Keep in sync with the release tag.
const Version = "1.2.0"

// FullVersion returns the version with the v prefix
func FullVersion() string {
	return "v" + Version
}
