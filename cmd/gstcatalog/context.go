package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"gstcatalog/internal/catalog"
	"gstcatalog/internal/config"
	"gstcatalog/internal/inspect"
	"gstcatalog/internal/logging"
	"gstcatalog/internal/services"
	"gstcatalog/internal/services/gstinspect"
	"gstcatalog/internal/snapshot"
)

type commandContext struct {
	configFlag   *string
	dumpFileFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, dumpFileFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		dumpFileFlag: dumpFileFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) dumpFile() string {
	if c.dumpFileFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.dumpFileFlag)
}

// commandScope annotates the command's context with its name and a fresh
// session id so every log line of one invocation can be correlated.
func commandScope(cmd *cobra.Command, sessionID string) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = services.WithCommand(ctx, cmd.Name())
	return services.WithSessionID(ctx, sessionID)
}

// source picks where raw report text comes from: the --dump-file contents when
// given, the gst-inspect binary otherwise.
func (c *commandContext) source(cmd *cobra.Command) (catalog.Source, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if path := c.dumpFile(); path != "" {
		return newFileSource(path, cmd.InOrStdin()), nil
	}
	return gstinspect.New(cfg.Inspect.Binary,
		gstinspect.WithLocale(cfg.Inspect.Locale),
		gstinspect.WithTimeout(cfg.InspectTimeout()),
	), nil
}

func (c *commandContext) newEngine(source catalog.Source, opts ...catalog.Option) (*catalog.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	parser := inspect.NewParser(inspect.WithFlagTokens(cfg.FlagTokens()))
	base := []catalog.Option{
		catalog.WithLogger(logger),
		catalog.WithParser(parser),
		catalog.WithWorkers(cfg.Inspect.Workers),
	}
	return catalog.NewEngine(source, append(base, opts...)...), nil
}

func (c *commandContext) openSnapshots() (*snapshot.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return snapshot.Open(cfg.SnapshotPath())
}

// loadCatalog builds an engine filled from --dump-file or, without it, from
// the latest stored snapshot.
func (c *commandContext) loadCatalog(cmd *cobra.Command) (*catalog.Engine, error) {
	ctx := commandScope(cmd, "")

	if c.dumpFile() != "" {
		source, err := c.source(cmd)
		if err != nil {
			return nil, err
		}
		engine, err := c.newEngine(source)
		if err != nil {
			return nil, err
		}
		if _, err := engine.Refresh(ctx); err != nil {
			return nil, err
		}
		return engine, nil
	}

	store, err := c.openSnapshots()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	latest, err := store.Latest(ctx)
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, fmt.Errorf("%w; run 'gstcatalog refresh' or pass --dump-file", err)
	}
	if err != nil {
		return nil, err
	}

	engine, err := c.newEngine(nil)
	if err != nil {
		return nil, err
	}
	if _, err := engine.Load(services.WithSessionID(ctx, latest.SessionID), latest.Content); err != nil {
		return nil, err
	}
	return engine, nil
}

// fileSource serves a saved --print-all dump. Single-element requests are
// answered from the matching chunk of the same dump.
type fileSource struct {
	path  string
	stdin io.Reader

	once sync.Once
	text string
	err  error
}

func newFileSource(path string, stdin io.Reader) *fileSource {
	return &fileSource{path: path, stdin: stdin}
}

func (f *fileSource) read() (string, error) {
	f.once.Do(func() {
		var data []byte
		if f.path == "-" {
			data, f.err = io.ReadAll(f.stdin)
		} else {
			var expanded string
			if expanded, f.err = config.ExpandPath(f.path); f.err == nil {
				data, f.err = os.ReadFile(expanded)
			}
		}
		if f.err != nil {
			f.err = fmt.Errorf("read dump file: %w", f.err)
			return
		}
		f.text = string(data)
	})
	return f.text, f.err
}

func (f *fileSource) Dump(context.Context) (string, error) {
	return f.read()
}

func (f *fileSource) Inspect(_ context.Context, name string) (string, error) {
	text, err := f.read()
	if err != nil {
		return "", err
	}
	var found string
	var ok bool
	for chunkName, chunk := range inspect.Segment(text) {
		if chunkName == name {
			found, ok = chunk, true
		}
	}
	if !ok {
		return "", services.Wrap(services.ErrNotFound, "dump file", "inspect", fmt.Sprintf("element %q not in %s", name, f.path), nil)
	}
	return found, nil
}

// capturingSource remembers the last full dump so refresh can store it.
type capturingSource struct {
	catalog.Source
	dump string
}

func (c *capturingSource) Dump(ctx context.Context) (string, error) {
	dump, err := c.Source.Dump(ctx)
	c.dump = dump
	return dump, err
}

type versioner interface {
	Version(ctx context.Context) (string, error)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
