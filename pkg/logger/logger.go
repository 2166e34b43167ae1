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

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	// Create logger
	logger := slog.New(handler)

	return &Logger{
		Logger: logger,
	}
}

// NewWithHandler wraps an existing slog handler.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{Logger: slog.New(h)}
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

// WithUserID adds user ID to logger context
func (l *Logger) WithUserID(userID int64) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.Int64("user_id", userID)),
	}
}

// HTTP logging methods

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
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Business logic logging methods

// LogEventCreated logs when an event is created and materialized
func (l *Logger) LogEventCreated(ctx context.Context, eventID, layoutID int64, areas, seats int) {
	l.Logger.InfoContext(ctx,
		"Event Created",
		slog.Int64("event_id", eventID),
		slog.Int64("layout_id", layoutID),
		slog.Int("event_areas", areas),
		slog.Int("event_seats", seats),
	)
}

// LogTicketPurchased logs a committed purchase
func (l *Logger) LogTicketPurchased(ctx context.Context, ticketID, eventSeatID, userID int64, price float64) {
	l.Logger.InfoContext(ctx,
		"Ticket Purchased",
		slog.Int64("ticket_id", ticketID),
		slog.Int64("event_seat_id", eventSeatID),
		slog.Int64("user_id", userID),
		slog.Float64("price", price),
	)
}

// LogTicketCancelled logs a committed cancellation
func (l *Logger) LogTicketCancelled(ctx context.Context, ticketID, eventSeatID, userID int64) {
	l.Logger.InfoContext(ctx,
		"Ticket Cancelled",
		slog.Int64("ticket_id", ticketID),
		slog.Int64("event_seat_id", eventSeatID),
		slog.Int64("user_id", userID),
	)
}

// LogCascadeDeleted logs the row counts removed by a cascading delete
func (l *Logger) LogCascadeDeleted(ctx context.Context, entity string, id int64, counts map[string]int) {
	args := []any{slog.String("entity", entity), slog.Int64("id", id)}
	for table, n := range counts {
		args = append(args, slog.Int(table, n))
	}
	l.Logger.InfoContext(ctx, "Cascade Deleted", args...)
}

// Security logging methods

// LogAuthFailure logs failed authentication
func (l *Logger) LogAuthFailure(ctx context.Context, reason, ip string) {
	l.Logger.WarnContext(ctx,
		"Authentication Failure",
		slog.String("reason", reason),
		slog.String("ip", ip),
	)
}

// LogRateLimitExceeded logs rate limit exceeded
func (l *Logger) LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	l.Logger.WarnContext(ctx,
		"Rate Limit Exceeded",
		slog.String("ip", ip),
		slog.String("endpoint", endpoint),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault replaces the default logger instance. Call it before wiring
// services, which capture the default when they are built.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
