package extract

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/distmeta/pkg/buildsys"
	"github.com/matzehuels/distmeta/pkg/metadata"
	"github.com/matzehuels/distmeta/pkg/requirements"
)

// Report is everything distmeta knows about a project.
type Report struct {
	Dir          string                `json:"dir" yaml:"dir"`
	BuildSystem  *buildsys.BuildSystem `json:"build_system" yaml:"build_system"`
	Metadata     *metadata.Metadata    `json:"metadata" yaml:"metadata"`
	Requirements []string              `json:"requirements" yaml:"requirements"`
}

// Inspect extracts metadata and scans requirements for dir concurrently.
// The first error cancels the other task and is returned.
func (e *Extractor) Inspect(ctx context.Context, dir string) (*Report, error) {
	report := &Report{Dir: dir}
	scanner := requirements.Scanner{Logger: e.logger}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bs, md, err := e.extract(gctx, dir)
		if err != nil {
			return err
		}
		report.BuildSystem, report.Metadata = bs, md
		return nil
	})
	g.Go(func() error {
		reqs, err := scanner.Scan(gctx, dir)
		if err != nil {
			return err
		}
		report.Requirements = reqs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// Inspect is a convenience wrapper using the default Python interpreter.
func Inspect(ctx context.Context, dir string) (*Report, error) {
	return New(nil).Inspect(ctx, dir)
}
