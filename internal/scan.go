package internal

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kvesta/pomvuln/config"
	"github.com/kvesta/pomvuln/internal/report"
	"github.com/kvesta/pomvuln/internal/vulnscan"
	"github.com/kvesta/pomvuln/pkg/pom"
	"github.com/kvesta/pomvuln/pkg/vulnlib"
)

// DoScan loads the descriptor, extracts its dependencies and looks each
// one up. Any error returned has already been logged as the single fatal
// line of the run. Lookup failures are logged as warnings and never
// fail the run.
func DoScan(ctx context.Context, opts Options) error {
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.PomPath == "" {
		opts.PomPath = config.DefaultPomPath
	}

	lg := report.NewLogger(opts.Log, opts.Annotations)

	fail := func(err error) error {
		lg.Fatal(err)
		return err
	}

	if opts.Format != "" && !report.ValidFormat(opts.Format) {
		return fail(fmt.Errorf("unknown output format %q", opts.Format))
	}

	project, err := pom.Load(opts.PomPath)
	if err != nil {
		return fail(err)
	}

	vulns := &Vuln{Project: project}

	vulns.Coords, err = project.Coordinates(pom.ExtractOptions{
		Sentinel:    opts.Sentinel,
		Interpolate: opts.Interpolate,
	})
	if err != nil {
		if errors.Is(err, pom.ErrNoDependencies) && opts.AllowEmpty {
			lg.Infof("No dependencies found in %s, nothing to scan", opts.PomPath)
			return nil
		}
		return fail(fmt.Errorf("%w in %s", err, opts.PomPath))
	}

	scanner := vulns.Scan
	scanner.Workers = opts.Workers

	// the mirror is opened before anything is announced so that a bad
	// --db path is the only line of the run
	if opts.DBPath != "" {
		db, err := vulnlib.OpenDBReadOnly(opts.DBPath)
		if err != nil {
			return fail(fmt.Errorf("failed to open CVE database: %w", err))
		}
		defer db.Close()

		scanner.VulnDB = db
	} else {
		scanner.VulnDB = vulnlib.NewClient(opts.Endpoint, opts.Timeout)
	}

	report.Announce(lg, vulns.Coords)

	findings := make([]*vulnscan.Finding, 0, len(vulns.Coords))
	scanner.Scan(ctx, vulns.Coords, func(f *vulnscan.Finding) {
		report.ResolveFinding(lg, f)
		findings = append(findings, f)
	})

	// the exit status depends only on loading and extraction
	if err = report.Render(opts.Out, opts.Format, findings); err != nil {
		lg.Warningf("failed to render findings: %v", err)
	}

	return nil
}
