package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"walletwatch/api/internal/config"

	"github.com/golang-cz/devslog"
	"github.com/google/uuid"
)

type Logger struct {
	*slog.Logger
}

func Init(config *config.Config) Logger {
	return New(os.Stdout, config.Prod_env)
}

func New(w io.Writer, prod bool) Logger {
	slogOpts := &slog.HandlerOptions{}

	var handler slog.Handler
	if prod {
		handler = slog.NewJSONHandler(w, slogOpts)
	} else {
		slogOpts.Level = slog.LevelDebug

		// new logger with options
		opts := &devslog.Options{
			HandlerOptions:    slogOpts,
			MaxSlicePrintSize: 4,
			SortKeys:          true,
			NewLineAfterLog:   true,
		}
		handler = devslog.NewHandler(w, opts)
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return Logger{logger}
}

// Discard is used by tests that do not care about log output.
func Discard() Logger {
	return Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// example Info("wallet synced", LS_MONITOR, false, "address", "0x..")
func (l Logger) Info(message string, logStream Logstream, isTemplate bool, args ...any) {
	_, file, line, _ := runtime.Caller(skip(isTemplate))
	l.print(LL_INFO, message, logStream, file, line, args...)
}

func (l Logger) Warn(message string, logStream Logstream, isTemplate bool, args ...any) {
	_, file, line, _ := runtime.Caller(skip(isTemplate))
	l.print(LL_WARN, message, logStream, file, line, args...)
}

// example Error("get balance", LS_MONITOR, false, "address", "0x..", "error", err.Error())
func (l Logger) Error(message string, logStream Logstream, isTemplate bool, args ...any) {
	_, file, line, _ := runtime.Caller(skip(isTemplate))
	l.print(LL_ERROR, message, logStream, file, line, args...)
}

// Fatal does not exit, the caller decides what to do next
func (l Logger) Fatal(message string, logStream Logstream, isTemplate bool, args ...any) {
	_, file, line, _ := runtime.Caller(skip(isTemplate))
	l.print(LL_FATAL, message, logStream, file, line, args...)
}

func (l Logger) Debug(message string, args ...any) {
	_, file, line, _ := runtime.Caller(1)

	args = append(args, "source", file+":"+strconv.Itoa(line))
	l.Logger.Debug(message, args...)
}

func skip(isTemplate bool) int {
	if isTemplate {
		return 2
	}
	return 1
}

func (l Logger) print(ll LogLevel, message string, logStream Logstream, file string, line int, args ...any) {
	args = append(args, "stream", logStream.ToString(), "source", file+":"+strconv.Itoa(line))
	switch ll {
	case LL_ERROR:
		l.Logger.Error(message, args...)
	case LL_INFO:
		l.Logger.Info(message, args...)
	case LL_WARN:
		l.Logger.Warn(message, args...)
	case LL_FATAL:
		l.Logger.Error(message, append(args, "level_name", ll.ToString())...)
	case LL_DEBUG:
		l.Logger.Debug(message, args...)
	}
}

func AnyToStr(t any) string {
	return fmt.Sprintf("%v", t)
}

func GenErrorId() string {
	var errorId string
	uuid, err := uuid.NewRandom()
	if err != nil {
		errorId = NA
	} else {
		errorId = uuid.String()
	}
	return errorId
}
