package version

import "fmt"

// These variables are populated at build time via -ldflags.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func String() string {
	s := Version
	if Commit != "" {
		s = fmt.Sprintf("%s (commit %s)", s, Commit)
	}
	if Date != "" {
		s = fmt.Sprintf("%s, built %s", s, Date)
	}
	return s
}
