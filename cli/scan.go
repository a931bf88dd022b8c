package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/kvesta/pomvuln/config"
	"github.com/kvesta/pomvuln/internal"
	"github.com/kvesta/pomvuln/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [OPTIONS]",
		Short: "Scan the dependencies of a pom.xml for known CVEs",
		Long: `Examples:
  # Scan ./pom.xml against the default CVE service
  $ pomvuln scan

  # Scan a specific descriptor against another service
  $ pomvuln scan -f service/pom.xml --endpoint http://cve.internal:8080

  # Four lookups in flight, table summary at the end
  $ pomvuln scan -w 4 -o table

  # Offline, from a local sqlite mirror
  $ pomvuln scan --db ~/.pomvuln/cve.db`,
		Args: NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runScan(cmd, os.Stderr); err != nil {
				os.Exit(1)
			}
		},
	}

	flags := scanCmd.Flags()
	flags.StringP("pom-path", "f", config.DefaultPomPath, "path of the pom.xml file")
	flags.String("endpoint", config.DefaultEndpoint, "base address of the CVE list service")
	flags.Duration("timeout", config.DefaultTimeout, "timeout of a single lookup")
	flags.IntP("workers", "w", config.DefaultWorkers, "number of lookups in flight")
	flags.Bool("allow-empty", false, "succeed when the pom.xml declares no dependencies")
	flags.String("sentinel", config.DefaultSentinel, "value used for a missing groupId, artifactId or version")
	flags.Bool("interpolate", false, "resolve ${property} references in coordinates")
	flags.String("db", "", "look up CVEs in a local sqlite database instead of the service")
	flags.StringP("output", "o", report.FormatLog, "output format: log, table, json or yaml")
	flags.Bool("annotations", report.InActions(), "emit GitHub Actions workflow commands")

	return scanCmd
}

// runScan logs every error it returns as the fatal line of the run.
func runScan(cmd *cobra.Command, stderr io.Writer) error {
	v := newViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		err = fmt.Errorf("failed to read scan options: %v", err)
		report.NewLogger(stderr, v.GetBool("annotations")).Fatal(err)
		return err
	}

	opts := scanOptions(v)
	opts.Log = stderr

	return internal.DoScan(config.Ctx, opts)
}

func scanOptions(v *viper.Viper) internal.Options {
	return internal.Options{
		PomPath:     v.GetString("pom-path"),
		Endpoint:    v.GetString("endpoint"),
		Timeout:     v.GetDuration("timeout"),
		Workers:     v.GetInt("workers"),
		AllowEmpty:  v.GetBool("allow-empty"),
		Sentinel:    v.GetString("sentinel"),
		Interpolate: v.GetBool("interpolate"),
		DBPath:      v.GetString("db"),
		Format:      v.GetString("output"),
		Annotations: v.GetBool("annotations"),
	}
}
