package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Text handler for development, JSON for production
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithRequestID adds request ID to logger context
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("request_id", requestID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// WithFields adds multiple fields to logger context
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.Int("size", c.Writer.Size()),
	)
}

// Booking lifecycle logging

// LogBookingCreated logs when a booking is created
func (l *Logger) LogBookingCreated(ctx context.Context, bookingNumber, packageID string, total float64) {
	l.Logger.InfoContext(ctx,
		"Booking Created",
		slog.String("booking_number", bookingNumber),
		slog.String("package_id", packageID),
		slog.Float64("total_amount", total),
	)
}

// LogBookingStatusChanged logs a booking status transition
func (l *Logger) LogBookingStatusChanged(ctx context.Context, bookingNumber, from, to string) {
	l.Logger.InfoContext(ctx,
		"Booking Status Changed",
		slog.String("booking_number", bookingNumber),
		slog.String("from", from),
		slog.String("to", to),
	)
}

// LogBookingCancelled logs when a booking is cancelled
func (l *Logger) LogBookingCancelled(ctx context.Context, bookingNumber string, byAdmin bool) {
	l.Logger.InfoContext(ctx,
		"Booking Cancelled",
		slog.String("booking_number", bookingNumber),
		slog.Bool("by_admin", byAdmin),
	)
}

// Calendar logging

// LogSlotBlocked logs when an admin blocks a calendar slot
func (l *Logger) LogSlotBlocked(ctx context.Context, date, timeSlot, reason string) {
	l.Logger.InfoContext(ctx,
		"Calendar Slot Blocked",
		slog.String("date", date),
		slog.String("time", timeSlot),
		slog.String("reason", reason),
	)
}

// LogSlotReleased logs when a reservation or block is released
func (l *Logger) LogSlotReleased(ctx context.Context, date, timeSlot string) {
	l.Logger.InfoContext(ctx,
		"Calendar Slot Released",
		slog.String("date", date),
		slog.String("time", timeSlot),
	)
}

// LogReservationRollback logs a reservation rolled back after a failed persist
func (l *Logger) LogReservationRollback(ctx context.Context, date, timeSlot string, cause error) {
	l.Logger.WarnContext(ctx,
		"Reservation Rolled Back",
		slog.String("date", date),
		slog.String("time", timeSlot),
		slog.String("cause", cause.Error()),
	)
}

// Helper methods for common patterns

// InfoWithContext logs an info message with context
func (l *Logger) InfoWithContext(ctx context.Context, msg string, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.InfoContext(ctx, msg, args...)
}

// ErrorWithContext logs an error message with context
func (l *Logger) ErrorWithContext(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	args := make([]interface{}, 0, len(fields)*2+2)
	args = append(args, slog.String("error", err.Error()))
	for k, v := range fields {
		args = append(args, slog.Any(k, v))
	}
	l.Logger.ErrorContext(ctx, msg, args...)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
