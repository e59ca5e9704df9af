// Package logger sets up the process-wide zap logger and the gin middleware that
// writes request and panic records through it.
package logger

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"ecotech_server/internal/config"
	"ecotech_server/internal/model"
	"ecotech_server/pkg/constants"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init replaces the global zap logger according to cfg.
//
// Every mode writes JSON records to a lumberjack-rotated file so they can be shipped
// and searched later. Development modes ("dev" and gin's "debug") additionally tee a
// human-readable copy to stdout at debug level, since nobody tails JSON while coding.
func Init(cfg *config.LogConfig, mode string) error {
	if cfg == nil {
		return errors.New("logger: nil log config")
	}
	withDefaults(cfg)

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return fmt.Errorf("logger: level %q: %w", cfg.Level, err)
	}

	file := zapcore.NewCore(jsonEncoder(), rotatingFile(cfg), level)
	core := file
	if isDevMode(mode) {
		console := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stdout),
			zapcore.DebugLevel,
		)
		core = zapcore.NewTee(file, console)
	}

	// AddCaller puts file:line on each record, which is usually enough to find the handler.
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
	return nil
}

// withDefaults fills what the config file left out: app.log under logPath,
// 100 MB files, five backups kept for thirty days, info level.
func withDefaults(cfg *config.LogConfig) {
	if cfg.FileName == "" {
		cfg.FileName = filepath.Join(cfg.LogPath, "app.log")
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 100
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 5
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 30
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
}

func isDevMode(mode string) bool {
	return mode == "dev" || mode == gin.DebugMode
}

// rotatingFile keeps a single log from growing until the disk is full; uploads
// already compete for the same volume.
func rotatingFile(cfg *config.LogConfig) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	})
}

// jsonEncoder uses ISO8601 under "time" and upper-case levels (INFO, WARN).
func jsonEncoder() zapcore.Encoder {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

// GinLogger writes one record per request once the handler chain has finished,
// so the final status code and response size are known.
//
// The level follows the status: 5xx is an error, 4xx a warning, the rest info.
// Requests for /static and /favicon.ico are logged at debug only; a single page
// view pulls several of them and they would drown the form submissions.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ClientIP", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Int("bytes", c.Writer.Size()),
			zap.Duration("cost", time.Since(start)),
		}
		// admin pages record who made the change
		if val, ok := c.Get(constants.CURRENT_ADMIN_KEY); ok {
			if admin, ok := val.(*model.Admin); ok && admin != nil {
				fields = append(fields, zap.String("admin", admin.Username))
			}
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		switch {
		case status >= http.StatusInternalServerError:
			zap.L().Error("http request", fields...)
		case status >= http.StatusBadRequest:
			zap.L().Warn("http request", fields...)
		case isAsset(path):
			zap.L().Debug("http request", fields...)
		default:
			zap.L().Info("http request", fields...)
		}
	}
}

func isAsset(path string) bool {
	return strings.HasPrefix(path, "/static/") || path == "/favicon.ico"
}

// GinRecovery turns a handler panic into a logged error and a 500 response.
//
// onPanic renders the response, normally the 500 page. It is skipped when the
// handler already started writing, because a second body would be appended to a
// half-sent page; the status alone is set then. A panic caused by the client
// hanging up is only logged, since there is nobody left to answer.
func GinRecovery(stack bool, onPanic gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// headers only; the body may be a multi-megabyte resume
			dump, _ := httputil.DumpRequest(c.Request, false)
			fields := []zap.Field{
				zap.Any("error", rec),
				zap.String("request", string(dump)),
			}

			if err, ok := rec.(error); ok && isBrokenPipeError(err) {
				zap.L().Warn("client went away", append(fields, zap.String("path", c.Request.URL.Path))...)
				_ = c.Error(err)
				c.Abort()
				return
			}

			if stack {
				fields = append(fields, zap.String("stack", string(debug.Stack())))
			}
			zap.L().Error("[Recovery from panic]", fields...)

			if onPanic == nil || c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			onPanic(c)
			c.Abort()
		}()
		c.Next()
	}
}

// isBrokenPipeError reports whether err means the peer closed the connection.
// The errno check covers wrapped syscall errors; the text match catches errors
// that lost their chain on the way up.
func isBrokenPipeError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
