// Package misc keeps build time program identification.
package misc

// Values are replaced at link time: -ldflags "-X svgready/misc.version=..."
var (
	appName = "svgready"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
