// Package prebuild runs the mod pipeline for a project directory: it loads
// the project file, applies the configured plugins and evaluates the base
// mods against the native projects.
package prebuild

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/lex00/wetwire-mods-go/basemods"
	"github.com/lex00/wetwire-mods-go/config"
	"github.com/lex00/wetwire-mods-go/logging"
	"github.com/lex00/wetwire-mods-go/mods"
	"github.com/lex00/wetwire-mods-go/plugins"
)

// Options configures a run.
type Options struct {
	// ProjectDir is where the lookup of the project file starts
	ProjectDir string

	// Platforms overrides the platforms of the project file
	Platforms []mods.Platform

	Verbose               bool
	AllowMissingProviders bool
}

// Runner runs prebuilds against a file system.
type Runner struct {
	Fs     afero.Fs
	Logger *log.Logger
}

// NewRunner creates a Runner on the OS file system logging to w.
func NewRunner(w io.Writer) *Runner {
	return &Runner{
		Fs:     afero.NewOsFs(),
		Logger: logging.New(w, false),
	}
}

// Prebuild evaluates every mod and writes the native project files.
func (r *Runner) Prebuild(ctx context.Context, opts Options) (*mods.ExportedConfig, error) {
	return r.run(ctx, opts, false)
}

// Introspect evaluates the introspectable mods without writing anything and
// returns the document holding their results under Internal.ModResults.
func (r *Runner) Introspect(ctx context.Context, opts Options) (*mods.ExportedConfig, error) {
	return r.run(ctx, opts, true)
}

func (r *Runner) run(ctx context.Context, opts Options, introspect bool) (*mods.ExportedConfig, error) {
	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}
	cfg, cfgPath, err := config.LoadConfigFrom(fsys, dir)
	if err != nil {
		return nil, err
	}

	logger := r.logger()
	if opts.Verbose || cfg.Debug {
		logger = logging.Verbose(logger)
	}
	ctx = log.WithContext(ctx, logger)

	projectRoot, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}
	if cfgPath != "" {
		projectRoot = filepath.Dir(cfgPath)
		logger.Debug("loaded config", "path", cfgPath)
	}

	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms, err = cfg.ModPlatforms()
		if err != nil {
			return nil, err
		}
	}

	doc, err := exportedConfig(cfg, projectRoot)
	if err != nil {
		return nil, err
	}

	logger.Info("evaluating mods", "projectRoot", projectRoot, "introspect", introspect)
	out, err := basemods.Compile(ctx, doc, basemods.CompileOptions{
		Fs:                    fsys,
		ProjectRoot:           projectRoot,
		Platforms:             platforms,
		Introspect:            introspect,
		AllowMissingProviders: opts.AllowMissingProviders,
		Options:               cfg.ModOptions(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate mods: %w", err)
	}
	return out, nil
}

// exportedConfig builds the document for cfg with the configured plugins applied.
func exportedConfig(cfg *config.Config, projectRoot string) (*mods.ExportedConfig, error) {
	doc := &mods.ExportedConfig{
		Name:     cfg.Name,
		Extra:    cfg.Extra,
		Internal: &mods.Internal{ProjectRoot: projectRoot},
	}

	doc, err := plugins.WithPodfileProperties(doc, cfg.PodfileProperties())
	if err != nil {
		return nil, err
	}
	return plugins.WithGradleProperties(doc, cfg.GradleProperties())
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return logging.New(io.Discard, false)
	}
	return r.Logger
}
