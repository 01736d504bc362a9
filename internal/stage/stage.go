// Package stage runs the single-purpose pipeline commands: read from stdin,
// transform, write to stdout, log to stderr. Any error is fatal and leaves
// stdout empty so that downstream stages see a severed pipe rather than a
// partial frame.
package stage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cwbudde/algo-formant/frame"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "FORMANT_LOG_LEVEL"

// Env is what a stage body sees.
type Env struct {
	Name string
	In   io.Reader
	// Out is buffered and only reaches the real stdout on success.
	Out io.Writer
	Log *zap.Logger
}

// Func is a stage body.
type Func func(env Env) error

// FrameFunc transforms one frame into another.
type FrameFunc func(in *frame.Frame, log *zap.Logger) (*frame.Frame, error)

// Filter adapts a FrameFunc into a stage that reads one frame from stdin and
// writes one to stdout.
func Filter(fn FrameFunc) Func {
	return func(env Env) error {
		in, err := frame.Read(env.In)
		if err != nil {
			return err
		}

		env.Log.Debug("frame read",
			zap.Float32("sample_rate", in.SampleRate),
			zap.Int("samples", len(in.Samples)),
			zap.Int("peaks", len(in.Peaks)),
		)

		out, err := fn(in, env.Log)
		if err != nil {
			return err
		}

		return frame.Write(env.Out, out)
	}
}

// Run executes fn and returns the process exit code.
func Run(name string, stdin io.Reader, stdout, stderr io.Writer, fn Func) int {
	log := NewLogger(name, stderr, LevelFromEnv())
	defer func() { _ = log.Sync() }()

	start := time.Now()

	var out bytes.Buffer
	if err := fn(Env{Name: name, In: stdin, Out: &out, Log: log}); err != nil {
		log.Error("stage failed", zap.Error(err))
		return 1
	}

	if _, err := out.WriteTo(stdout); err != nil {
		log.Error("writing output", zap.Error(err))
		return 1
	}

	log.Debug("stage done", zap.Duration("elapsed", time.Since(start)))

	return 0
}

// Main runs fn against the process streams and exits.
func Main(name string, fn Func) {
	os.Exit(Run(name, os.Stdin, os.Stdout, os.Stderr, fn))
}

// NewLogger builds the JSON stderr logger with the stage name attached.
func NewLogger(name string, w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))

	return zap.New(core, zap.AddCaller()).With(zap.String("stage", name))
}

// LevelFromEnv reads LevelEnv; unset or unknown values mean info.
func LevelFromEnv() zapcore.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// ParseLevel maps a level name to its zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return zapcore.InfoLevel
	}

	return level
}

// Usagef returns an error for bad command-line arguments.
func Usagef(format string, args ...any) error {
	return fmt.Errorf("usage: "+format, args...)
}
