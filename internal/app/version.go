package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Version, Commit and BuildDate are set at link time:
//
//	go build -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that -version works with otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-version", "--version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version banner to out.
func PrintVersion(out io.Writer) {
	version := Version
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	fmt.Fprintf(out, "bigcalc %s\n", version)
	if Commit != "" {
		fmt.Fprintf(out, "  commit: %s\n", Commit)
	}
	if BuildDate != "" {
		fmt.Fprintf(out, "  built:  %s\n", BuildDate)
	}
	fmt.Fprintf(out, "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
