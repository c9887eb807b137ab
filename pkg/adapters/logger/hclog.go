package logger

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/ideamans/go-l10n"

	"github.com/user/stickerize/pkg/ports"
)

// HclogOptions configures the structured logger.
type HclogOptions struct {
	Name   string
	JSON   bool
	Output io.Writer // defaults to stderr
}

// HclogLogger adapts hashicorp/go-hclog to ports.Logger so the converter can
// be embedded in services that collect structured logs.
type HclogLogger struct {
	hl hclog.Logger
}

// NewHclog creates a structured logger at the given level.
func NewHclog(level ports.LogLevel, opts HclogOptions) *HclogLogger {
	if opts.Name == "" {
		opts.Name = "stickerize"
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &HclogLogger{
		hl: hclog.New(&hclog.LoggerOptions{
			Name:       opts.Name,
			Level:      hclogLevel(level),
			Output:     opts.Output,
			JSONFormat: opts.JSON,
		}),
	}
}

// WrapHclog adapts an existing hclog.Logger.
func WrapHclog(hl hclog.Logger) *HclogLogger {
	return &HclogLogger{hl: hl}
}

func (l *HclogLogger) Debug(msg string, args ...interface{}) {
	l.hl.Debug(l10n.F(msg, args...))
}

func (l *HclogLogger) Info(msg string, args ...interface{}) {
	l.hl.Info(l10n.F(msg, args...))
}

func (l *HclogLogger) Warn(msg string, args ...interface{}) {
	l.hl.Warn(l10n.F(msg, args...))
}

func (l *HclogLogger) Error(msg string, args ...interface{}) {
	l.hl.Error(l10n.F(msg, args...))
}

// WithComponent maps components to hclog sub-logger names.
func (l *HclogLogger) WithComponent(component string) ports.Logger {
	return &HclogLogger{hl: l.hl.Named(component)}
}

func hclogLevel(level ports.LogLevel) hclog.Level {
	switch level {
	case ports.LevelDebug:
		return hclog.Debug
	case ports.LevelInfo:
		return hclog.Info
	case ports.LevelWarn:
		return hclog.Warn
	case ports.LevelError:
		return hclog.Error
	default:
		return hclog.Off
	}
}

var _ ports.Logger = (*HclogLogger)(nil)
