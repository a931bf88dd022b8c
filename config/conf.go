package config

import (
	"context"
	"time"

	"github.com/fatih/color"
)

const (
	DefaultPomPath  = "./pom.xml"
	DefaultEndpoint = "http://localhost:8080"
	DefaultSentinel = "N/A"
	DefaultTimeout  = 10 * time.Second
	DefaultWorkers  = 1

	// CVEListPath is appended to the endpoint, followed by the escaped GAV
	CVEListPath = "/api/cve/list/"
)

var (
	Yellow = color.New(color.FgYellow).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Pink   = color.New(color.FgMagenta).SprintFunc()

	Ctx = context.Background()
)
