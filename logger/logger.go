package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cloud.google.com/go/logging"

	"github.com/mpgranch/gridveg-tools/common"
)

const (
	// logID is the name of the Cloud Logging log for maintenance runs.
	logID = "gridveg_maintenance"

	// logDir holds the per-run local log files.
	logDir = "logs"

	gcpLogging = "GCP_LOGGING"
)

type ctxKey struct{}

// ctxLoggerKey is how run loggers are stored and retrieved from context.
var ctxLoggerKey = ctxKey{}

var (
	cloudLogger  *logging.Logger
	cloudLogging bool
	local        *log.Logger
)

func init() {
	local = log.New(os.Stderr, "", log.LstdFlags)
}

type Provider func(ctx context.Context) ILogger

type Logging struct {
	client  *logging.Client
	logFile *os.File
}

// NewLogging initializes logging for a maintenance run: a timestamped local
// log file mirrored to stderr, and optionally Cloud Logging when GCP_LOGGING
// is enabled.
func NewLogging(ctx context.Context, projectID, runName string) (*Logging, error) {
	l := &Logging{}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("%s_%s.log", runName, time.Now().Format(common.BackupTimestampFormat))

	f, err := os.Create(filepath.Join(logDir, name))
	if err != nil {
		return nil, err
	}

	l.logFile = f
	local = log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags)

	cloudLogging, err = strconv.ParseBool(common.GetEnv(gcpLogging, "false"))
	if err != nil {
		return nil, err
	}

	if cloudLogging {
		client, err := logging.NewClient(ctx, projectID)
		if err != nil {
			return nil, err
		}

		l.client = client
		cloudLogger = client.Logger(logID)
	}

	return l, nil
}

// Logger returns the logger that was stored inside the context.
func (l *Logging) Logger(ctx context.Context) ILogger {
	return FromContext(ctx)
}

// Close flushes pending Cloud Logging entries and closes the local log file.
func (l *Logging) Close() error {
	if l.client != nil {
		if err := l.client.Close(); err != nil {
			return err
		}
	}

	if l.logFile != nil {
		return l.logFile.Close()
	}

	return nil
}

// IntoContext returns a context carrying the given run logger.
func IntoContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, l)
}

// FromContext returns the logger that was stored in context.
// If there isn't a logger stored, returns a new logger.
func FromContext(ctx context.Context) ILogger {
	if l, ok := ctx.Value(ctxLoggerKey).(*Logger); ok {
		return l
	}

	return newDefaultLogger()
}
