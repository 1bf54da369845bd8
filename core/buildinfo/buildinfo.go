package buildinfo

// Set via -ldflags at build time:
//
//	-X 'github.com/m3rciful/anonrelay/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/m3rciful/anonrelay/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/m3rciful/anonrelay/core/buildinfo.Date=2025-08-30T12:00:00Z'
var (
	// Version reports the semantic version or tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)

// String renders the build identity as a single line.
func String() string {
	s := Version + " (" + Commit
	if Date != "" {
		s += ", " + Date
	}
	return s + ")"
}
