package pom

import (
	"encoding/xml"
	"regexp"
)

var interpolationReg = regexp.MustCompile(`\$\{([^}]+)\}`)

type properties struct {
	m map[string]string
}

func (p *properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if p.m == nil {
		p.m = map[string]string{}
	}

	for {
		t, err := d.Token()
		if err != nil {
			return err
		}

		switch tt := t.(type) {
		case xml.StartElement:
			var s string
			if err := d.DecodeElement(&s, &tt); err != nil {
				return err
			}

			p.m[tt.Name.Local] = s

		case xml.EndElement:
			if tt.Name == start.Name {
				return nil
			}
		}
	}
}

// Property looks up a user-defined property or one of the project.* built-ins
func (p *Project) Property(name string) (string, bool) {
	switch name {
	case "project.groupId", "pom.groupId":
		return p.GroupID, p.GroupID != ""
	case "project.artifactId", "pom.artifactId":
		return p.ArtifactID, p.ArtifactID != ""
	case "project.version", "pom.version":
		return p.Version, p.Version != ""
	}

	v, ok := p.Properties.m[name]
	return v, ok
}

// Interpolate replaces ${name} references. Unknown references stay literal.
// Values that themselves reference other properties are expanded up to a
// fixed depth so a self-referencing property cannot loop.
func (p *Project) Interpolate(s string) string {
	for depth := 0; depth < 8 && interpolationReg.MatchString(s); depth++ {
		next := interpolationReg.ReplaceAllStringFunc(s, func(ref string) string {
			name := interpolationReg.FindStringSubmatch(ref)[1]
			if v, ok := p.Property(name); ok {
				return v
			}
			return ref
		})

		if next == s {
			break
		}
		s = next
	}

	return s
}
