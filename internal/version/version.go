package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/dotlink/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/dotlink/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/dotlink/internal/version.Date={{.Date}}
)

// Info is the multi-line description printed by `dotlink version`
func Info() string {
	return "dotlink version " + Version + "\n  commit: " + Commit + "\n  built:  " + Date + "\n"
}
