// Package buildinfo reports the version stamped into the binary at link time:
//
//	go build -ldflags "-X github.com/samwho/awair-prometheus-exporter/internal/buildinfo.BuildVersion=v1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	BuildVersion string
	BuildDate    string
	BuildCommit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildInfo writes the build banner to w.
func PrintBuildInfo(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(BuildVersion))
	fmt.Fprintf(w, "Build date: %s\n", orNA(BuildDate))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(BuildCommit))
}
