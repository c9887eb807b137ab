package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/user/stickerize/pkg/adapters/ffmpegencoder"
	"github.com/user/stickerize/pkg/adapters/filesink"
	"github.com/user/stickerize/pkg/adapters/ggrenderer"
	"github.com/user/stickerize/pkg/adapters/logger"
	"github.com/user/stickerize/pkg/adapters/nativestatic"
	"github.com/user/stickerize/pkg/adapters/nullsink"
	"github.com/user/stickerize/pkg/adapters/osfilesystem"
	"github.com/user/stickerize/pkg/adapters/smartdecoder"
	"github.com/user/stickerize/pkg/adapters/smartencoder"
	"github.com/user/stickerize/pkg/adapters/staging"
	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/config"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/orchestrator"
	"github.com/user/stickerize/pkg/ports"
	"github.com/user/stickerize/pkg/stages/detect"
	"github.com/user/stickerize/pkg/stages/encode"
	"github.com/user/stickerize/pkg/stages/materialize"
	"github.com/user/stickerize/pkg/stages/plan"
	"github.com/user/stickerize/pkg/stages/schedule"
	"github.com/user/stickerize/pkg/workerpool"
)

// loadConfig layers the config file, then global flags, over the defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("webpmux") {
		cfg.WebPMuxPath = c.String("webpmux")
	}
	if c.IsSet("static-encoder") {
		cfg.StaticEncoder = c.String("static-encoder")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("temp-dir") {
		cfg.TempDir = c.String("temp-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("kind") {
		cfg.Kind = c.String("kind")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	switch cfg.LogFormat {
	case config.FormatHclog:
		return logger.NewHclog(level, logger.HclogOptions{})
	case config.FormatJSON:
		return logger.NewHclog(level, logger.HclogOptions{JSON: true})
	default:
		return logger.NewConsole(level)
	}
}

// service is the wired converter shared by all files of one invocation.
type service struct {
	cfg  config.Config
	log  ports.Logger
	fs   *osfilesystem.FileSystem
	orch *orchestrator.Orchestrator
}

func newService(cfg config.Config, log ports.Logger) (*service, error) {
	fs := osfilesystem.New()
	runner := toolpath.NewRunner(cfg.ToolOverrides())
	pool := workerpool.New(cfg.Workers)

	_, ffmpegErr := runner.Path(toolpath.FFmpeg)
	if ffmpegErr != nil {
		log.Warn("ffmpeg not found, animated stickers will fail: %v", ffmpegErr)
	}

	decoders := smartdecoder.New(runner, smartdecoder.Options{
		GIF:     cfg.GIFOptions(),
		Writers: pool.Size(),
	}, log.WithComponent("decoder"))

	encoder, info, err := smartencoder.New(
		ffmpegencoder.New(runner, ffmpegencoder.Options{CRF: cfg.CRF}, log.WithComponent("ffmpeg")),
		nativestatic.New(log.WithComponent("native")),
		smartencoder.Options{
			Mode:            cfg.StaticMode(),
			FFmpegAvailable: ffmpegErr == nil,
			Logger:          log,
		},
	)
	if err != nil {
		return nil, err
	}
	log.Debug("Still images use the %s encoder (requested %s)", info.Static, info.Requested)

	var sink ports.DebugSink = nullsink.New()
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, ggrenderer.New())
	}

	stages := orchestrator.Stages{
		Detect:      detect.NewStage(log),
		Schedule:    schedule.NewStage(pool, log),
		Materialize: materialize.NewStage(pool, log),
		Plan:        plan.NewStage(log),
		Encode:      encode.NewStage(encoder, log),
	}
	orch := orchestrator.New(stages, decoders, staging.NewFactory(fs, cfg.TempDir), sink, log)

	return &service{cfg: cfg, log: log, fs: fs, orch: orch}, nil
}

// setup loads configuration, wires the service and returns a context that
// is cancelled on SIGINT or SIGTERM.
func setup(c *cli.Context) (*service, context.Context, context.CancelFunc, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, err
	}
	log := newLogger(cfg, c.Bool("quiet"))

	svc, err := newService(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithCancel(c.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return svc, ctx, cancel, nil
}

func (s *service) readRequest(path string) (orchestrator.Request, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return orchestrator.Request{}, err
	}
	return orchestrator.Request{
		Name: filepath.Base(path),
		Data: data,
		Kind: s.cfg.StickerKind(),
	}, nil
}

// convertFile converts one input and writes the sticker. It returns the
// result and the output path.
func (s *service) convertFile(ctx context.Context, input, output, outDir string) (orchestrator.Result, string, error) {
	req, err := s.readRequest(input)
	if err != nil {
		return orchestrator.Result{}, "", err
	}

	res, err := s.orch.Convert(ctx, req)
	if err != nil {
		return res, "", err
	}

	path := outputPath(input, output, outDir, res.Container)
	if err := s.fs.WriteFile(path, res.Data); err != nil {
		return res, "", fmt.Errorf("write output: %w", err)
	}
	s.log.Info("Output saved to %s", path)
	return res, path, nil
}

// outputPath picks where a sticker is written. An explicit output wins;
// otherwise the input name gets the container extension, in outDir or next
// to the input. A name that would overwrite the input gets a ".sticker"
// infix.
func outputPath(input, output, outDir string, container media.Container) string {
	if output != "" {
		return output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	path := filepath.Join(outDir, base+container.Extension())
	if filepath.Clean(path) == filepath.Clean(input) {
		path = filepath.Join(outDir, base+".sticker"+container.Extension())
	}
	return path
}

var errNoInput = errors.New("no input files")
