package internal

import (
	"io"
	"time"

	"github.com/kvesta/pomvuln/internal/vulnscan"
	"github.com/kvesta/pomvuln/pkg/pom"
)

// Options carries everything a scan run is configured with
type Options struct {
	PomPath  string
	Endpoint string
	Timeout  time.Duration
	Workers  int

	// AllowEmpty turns a descriptor without dependencies into a successful
	// no-op instead of a fatal error
	AllowEmpty  bool
	Sentinel    string
	Interpolate bool

	// DBPath selects the local SQLite mirror instead of the remote service
	DBPath string

	Format      string
	Annotations bool

	// Log receives the run log, Out the rendered findings
	Log io.Writer
	Out io.Writer
}

type Vuln struct {
	Scan vulnscan.Scanner
	// parsed descriptor
	Project *pom.Project
	// coordinates in declaration order
	Coords []pom.Coordinate
}
