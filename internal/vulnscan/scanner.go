package vulnscan

import (
	"github.com/kvesta/pomvuln/config"
	"github.com/kvesta/pomvuln/pkg/pom"
	"github.com/kvesta/pomvuln/pkg/vulnlib"
)

type Status int

const (
	NotFound Status = iota
	Found
	LookupFailed
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "none"
	case LookupFailed:
		return "failed"
	default:
		// ignore
	}
	return "unknown"
}

type Scanner struct {
	VulnDB vulnlib.Lookuper

	// Workers bounds the number of lookups in flight, 1 keeps them sequential
	Workers int
}

// Finding is the outcome of a single lookup
type Finding struct {
	pom.Coordinate

	Status Status
	CVEIDs []string
	Err    error
}

func (ps *Scanner) workers() int {
	if ps.Workers < 1 {
		return config.DefaultWorkers
	}
	return ps.Workers
}
