package pom

import (
	"strings"

	"github.com/kvesta/pomvuln/config"
)

// Field marks which parts of a coordinate were absent from the descriptor
type Field uint8

const (
	GroupField Field = 1 << iota
	ArtifactField
	VersionField
)

func (f Field) Has(o Field) bool {
	return f&o != 0
}

func (f Field) String() string {
	names := []string{}
	if f.Has(GroupField) {
		names = append(names, "groupId")
	}
	if f.Has(ArtifactField) {
		names = append(names, "artifactId")
	}
	if f.Has(VersionField) {
		names = append(names, "version")
	}

	return strings.Join(names, ",")
}

type Coordinate struct {
	GroupID    string `json:"groupId" yaml:"groupId"`
	ArtifactID string `json:"artifactId" yaml:"artifactId"`
	Version    string `json:"version" yaml:"version"`

	Missing Field `json:"-" yaml:"-"`
}

// GAV renders group:artifact:version
func (c Coordinate) GAV() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

type ExtractOptions struct {
	// Sentinel replaces any absent field, defaults to N/A
	Sentinel string

	// Interpolate resolves ${...} references against project properties
	Interpolate bool
}

func (o ExtractOptions) sentinel() string {
	if o.Sentinel == "" {
		return config.DefaultSentinel
	}
	return o.Sentinel
}

// Coordinate extracts the triple of one dependency. A field is absent
// when its element does not occur at all; an empty element is kept as "".
func (d Dependency) Coordinate(opts ExtractOptions) Coordinate {
	c := Coordinate{}

	pick := func(values []string, f Field) string {
		if len(values) == 0 {
			c.Missing |= f
			return opts.sentinel()
		}
		return strings.TrimSpace(values[0])
	}

	c.GroupID = pick(d.GroupID, GroupField)
	c.ArtifactID = pick(d.ArtifactID, ArtifactField)
	c.Version = pick(d.Version, VersionField)

	return c
}

// Coordinates returns every declared dependency in document order.
// A missing or empty <dependencies> block yields ErrNoDependencies.
func (p *Project) Coordinates(opts ExtractOptions) ([]Coordinate, error) {
	deps := p.DependencyList()
	if len(deps) == 0 {
		return nil, ErrNoDependencies
	}

	coords := make([]Coordinate, 0, len(deps))
	for _, d := range deps {
		c := d.Coordinate(opts)

		if opts.Interpolate {
			if !c.Missing.Has(GroupField) {
				c.GroupID = p.Interpolate(c.GroupID)
			}
			if !c.Missing.Has(ArtifactField) {
				c.ArtifactID = p.Interpolate(c.ArtifactID)
			}
			if !c.Missing.Has(VersionField) {
				c.Version = p.Interpolate(c.Version)
			}
		}

		coords = append(coords, c)
	}

	return coords, nil
}
