package version

import "fmt"

// These variables are overridden at build time using -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String is the one-line banner printed by the command line tools.
func String() string {
	s := fmt.Sprintf("%s (%s)", Version, Commit)
	if Date != "" {
		s += " built " + Date
	}
	if Dirty == "true" {
		s += " dirty"
	}
	return s
}
