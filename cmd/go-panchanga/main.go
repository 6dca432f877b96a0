package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	charmlog "github.com/charmbracelet/log"

	"github.com/tartampluch/go-panchanga/internal/config"

	// Embedded zone database so IANA zones resolve on hosts without one.
	_ "time/tzdata"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout))
}

// runMain executes the command tree and maps the outcome to an exit code.
func runMain(args []string, out io.Writer) int {
	// Create a root context that cancels on SIGINT (Ctrl+C) or SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := &app{out: out}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Debug(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default slog logger. Logs go to stderr, since
// stdout carries chart output, and to a log file in the user cache dir.
// The text format uses charmbracelet/log; json uses the slog JSON handler.
func setupLogging(debugMode bool, format string) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	w := io.MultiWriter(writers...)
	var handler slog.Handler
	if format == config.LogFormatJSON {
		level := slog.LevelInfo
		if debugMode {
			level = slog.LevelDebug
		}
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: debugMode})
	} else {
		level := charmlog.InfoLevel
		if debugMode {
			level = charmlog.DebugLevel
		}
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			ReportCaller:    debugMode,
			Level:           level,
		})
	}
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
