// Package buildinfo prints the version data stamped at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/ganfan/internal/buildinfo.buildVersion=v1.0.0 \
//	  -X github.com/dmitrijs2005/ganfan/internal/buildinfo.buildDate=$(date -u +%F) \
//	  -X github.com/dmitrijs2005/ganfan/internal/buildinfo.buildCommit=$(git rev-parse --short HEAD)" ./cmd/ganfan
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes version, date and commit, with N/A for unset values.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(buildCommit))
}
