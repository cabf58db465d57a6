package extract

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/distmeta/pkg/buildsys"
	"github.com/matzehuels/distmeta/pkg/errors"
	"github.com/matzehuels/distmeta/pkg/hooks"
	"github.com/matzehuels/distmeta/pkg/metadata"
	"github.com/matzehuels/distmeta/pkg/observability"
)

const (
	// MetadataFile is the file read from the prepared metadata directory.
	MetadataFile = "METADATA"

	scratchPattern = "distmeta-"
)

// Extractor prepares and parses project metadata.
type Extractor struct {
	hooks   hooks.Caller
	tempDir string
	logger  *log.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTempDir sets the parent directory for scratch directories.
// The default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(e *Extractor) { e.tempDir = dir }
}

// WithLogger sets the logger. Extraction logs at debug level only.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Extractor that invokes backends through caller. A nil
// caller selects a [hooks.Subprocess] on the default interpreter.
func New(caller hooks.Caller, opts ...Option) *Extractor {
	if caller == nil {
		caller = &hooks.Subprocess{}
	}
	e := &Extractor{hooks: caller, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GetMetadata extracts the metadata of the project in dir using the
// default Python interpreter.
func GetMetadata(ctx context.Context, dir string) (*metadata.Metadata, error) {
	return New(nil).Extract(ctx, dir)
}

// Extract returns the metadata of the project in dir.
func (e *Extractor) Extract(ctx context.Context, dir string) (*metadata.Metadata, error) {
	_, md, err := e.extract(ctx, dir)
	return md, err
}

func (e *Extractor) extract(ctx context.Context, dir string) (*buildsys.BuildSystem, *metadata.Metadata, error) {
	id := uuid.NewString()
	logger := e.logger.With("extraction", id[:8])

	bs, fallback, err := buildsys.ResolveFallback(dir)
	if err != nil {
		return nil, nil, err
	}
	observability.Extract().OnResolve(ctx, dir, bs.BuildBackend, fallback)
	if fallback {
		logger.Debug("No build-system declared, using defaults", "backend", bs.BuildBackend)
	}

	source, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, err
	}

	md, err := e.prepare(ctx, logger, id, source, bs)
	if err != nil {
		return nil, nil, err
	}
	return bs, md, nil
}

// prepare owns the scratch directory for one hook invocation.
func (e *Extractor) prepare(ctx context.Context, logger *log.Logger, id, source string, bs *buildsys.BuildSystem) (md *metadata.Metadata, err error) {
	scratch, err := e.acquireScratch()
	if err != nil {
		return nil, err
	}
	defer e.releaseScratch(logger, scratch)

	start := time.Now()
	observability.Extract().OnExtractStart(ctx, id, source, bs.BuildBackend)
	defer func() {
		observability.Extract().OnExtractComplete(ctx, id, source, time.Since(start), err)
	}()

	logger.Debug("Preparing metadata", "backend", bs.BuildBackend, "backend_path", bs.BackendPath, "scratch", scratch)
	distInfo, err := e.hooks.PrepareMetadata(ctx, hooks.Request{
		SourceDir:    source,
		BuildBackend: bs.BuildBackend,
		BackendPath:  bs.BackendPath,
		MetadataDir:  scratch,
	})
	if err != nil {
		return nil, err
	}

	if err := errors.ValidateDistInfoName(distInfo); err != nil {
		return nil, err
	}

	path := filepath.Join(scratch, distInfo, MetadataFile)
	md, err = metadata.ParseFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeMetadataContract, err,
			"backend %s reported %s but wrote no %s", bs.BuildBackend, distInfo, MetadataFile)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Parsed metadata", "name", md.Name(), "version", md.Version(), "fields", md.Len())
	return md, nil
}

func (e *Extractor) acquireScratch() (string, error) {
	dir, err := os.MkdirTemp(e.tempDir, scratchPattern)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return abs, nil
}

func (e *Extractor) releaseScratch(logger *log.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("Failed to remove scratch directory", "dir", dir, "err", err)
	}
}

// IsContractViolation reports whether err means the backend claimed success
// without producing a usable metadata directory.
func IsContractViolation(err error) bool {
	return errors.Is(err, errors.ErrCodeMetadataContract)
}
