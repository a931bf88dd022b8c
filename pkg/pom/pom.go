package pom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kvesta/pomvuln/config"

	"golang.org/x/net/html/charset"
)

var (
	ErrDescriptorNotFound  = errors.New("descriptor not found")
	ErrMalformedDescriptor = errors.New("malformed descriptor")
	ErrNoDependencies      = errors.New("no dependencies found")
)

// Project is the subset of a pom.xml consumed by the scan
type Project struct {
	XMLName    xml.Name   `xml:"project"`
	GroupID    string     `xml:"groupId"`
	ArtifactID string     `xml:"artifactId"`
	Version    string     `xml:"version"`
	Properties properties `xml:"properties"`

	// Every <dependencies> block directly under <project>, in document order.
	// Only the first one is read.
	Dependencies []Dependencies `xml:"dependencies"`
}

type Dependencies struct {
	Dependency []Dependency `xml:"dependency"`
}

// Dependency keeps each child as a sequence so that absence and
// repetition are both visible. The first value wins.
type Dependency struct {
	GroupID    []string `xml:"groupId"`
	ArtifactID []string `xml:"artifactId"`
	Version    []string `xml:"version"`
}

// Load reads the descriptor at path and parses it. An empty path
// falls back to ./pom.xml.
func Load(path string) (*Project, error) {
	if path == "" {
		path = config.DefaultPomPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("the file %s does not exist: %w", path, ErrDescriptorNotFound)
		}
		return nil, fmt.Errorf("cannot access %s: %v", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

// newDecoder converts declared non-UTF-8 encodings such as ISO-8859-1
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	d.Entity = xml.HTMLEntity

	return d
}

// Parse decodes pom.xml content. The root element must be <project> and
// nothing but comments, processing instructions or whitespace may follow it.
func Parse(data []byte) (*Project, error) {
	p := &Project{}

	d := newDecoder(bytes.NewReader(data))
	if err := d.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	if err := checkTrailing(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDescriptor, err)
	}

	return p, nil
}

func checkTrailing(d *xml.Decoder) error {
	for {
		t, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line, _ := d.InputPos()
		switch tt := t.(type) {
		case xml.StartElement:
			return fmt.Errorf("line %d: unexpected element <%s> after </project>", line, tt.Name.Local)
		case xml.EndElement:
			return fmt.Errorf("line %d: unexpected end tag </%s> after </project>", line, tt.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(tt)) > 0 {
				return fmt.Errorf("line %d: unexpected text after </project>", line)
			}
		default:
			// comments, processing instructions
		}
	}
}

// DependencyList resolves project.dependencies[0].dependency
func (p *Project) DependencyList() []Dependency {
	if p == nil || len(p.Dependencies) == 0 {
		return nil
	}

	return p.Dependencies[0].Dependency
}
