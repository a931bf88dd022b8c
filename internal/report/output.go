package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kvesta/pomvuln/config"
	"github.com/kvesta/pomvuln/internal/vulnscan"
	"github.com/kvesta/pomvuln/pkg/pom"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	FormatLog   = "log"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var Formats = []string{FormatLog, FormatTable, FormatJSON, FormatYAML}

func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Announce logs every coordinate read from the descriptor
func Announce(lg *Logger, coords []pom.Coordinate) {
	lg.Infof("Dependencies found:")
	for _, c := range coords {
		lg.Infof("%s", c.GAV())
	}
}

// ResolveFinding logs the outcome of one lookup
func ResolveFinding(lg *Logger, f *vulnscan.Finding) {
	switch f.Status {
	case vulnscan.Found:
		lg.Infof("Found CVEs for %s: %s", config.Yellow(f.GAV()),
			config.Red(strings.Join(f.CVEIDs, ", ")))
	case vulnscan.NotFound:
		lg.Infof("No CVEs found for %s", f.GAV())
	case vulnscan.LookupFailed:
		lg.Warningf("Failed to look up %s: %v", f.GAV(), f.Err)
	default:
		// ignore
	}
}

type findingData struct {
	pom.Coordinate `yaml:",inline"`

	GAV    string   `json:"gav" yaml:"gav"`
	Status string   `json:"status" yaml:"status"`
	CVEIDs []string `json:"cveIds,omitempty" yaml:"cveIds,omitempty"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func toData(findings []*vulnscan.Finding) []findingData {
	data := make([]findingData, 0, len(findings))
	for _, f := range findings {
		d := findingData{
			Coordinate: f.Coordinate,
			GAV:        f.GAV(),
			Status:     f.Status.String(),
			CVEIDs:     f.CVEIDs,
		}
		if f.Err != nil {
			d.Error = f.Err.Error()
		}

		data = append(data, d)
	}

	return data
}

// Render writes all findings in the requested format. The log format has
// already been emitted line by line, so it writes nothing.
func Render(w io.Writer, format string, findings []*vulnscan.Finding) error {
	switch format {
	case FormatLog, "":
		return nil
	case FormatTable:
		return renderTable(w, findings)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toData(findings))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(toData(findings))
	default:
		// ignore
	}

	return fmt.Errorf("unknown output format %q, want one of %s", format, strings.Join(Formats, ", "))
}

func renderTable(w io.Writer, findings []*vulnscan.Finding) error {
	found, none, failed := 0, 0, 0
	for _, f := range findings {
		switch f.Status {
		case vulnscan.Found:
			found += 1
		case vulnscan.NotFound:
			none += 1
		case vulnscan.LookupFailed:
			failed += 1
		default:
			// ignore
		}
	}

	fmt.Fprintf(w, "\nScanned %d dependencies | "+
		"Vulnerable: %s Clean: %s Failed: %s\n\n",
		len(findings),
		config.Red(found),
		config.Green(none),
		config.Yellow(failed))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Dependency", "Status", "CVE IDs"})
	table.SetRowLine(true)
	table.SetAutoWrapText(false)

	for i, f := range findings {
		detail := strings.Join(f.CVEIDs, "\n")
		if f.Status == vulnscan.LookupFailed {
			detail = f.Err.Error()
		}

		table.Append([]string{
			strconv.Itoa(i + 1), f.GAV(), judgeStatus(f.Status), detail,
		})
	}

	table.Render()

	return nil
}

func judgeStatus(s vulnscan.Status) string {
	switch s {
	case vulnscan.Found:
		return config.Red(s.String())
	case vulnscan.NotFound:
		return config.Green(s.String())
	case vulnscan.LookupFailed:
		return config.Yellow(s.String())
	default:
		// ignore
	}
	return s.String()
}
