// Package submissionlog emits one structured event per stage of the form intake
// pipeline. Methods only accept presence flags, counts, ids and diagnostic
// messages; submission values never reach the log.
package submissionlog

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stage identifies a pipeline step
type Stage string

const (
	StageStart            Stage = "start"
	StageValidationOK     Stage = "validation_ok"
	StageValidationFailed Stage = "validation_failed"
	StageSpamRejected     Stage = "spam_rejected"
	StageRateLimited      Stage = "rate_limited"
	StageEnvMissing       Stage = "env_missing"
	StageSendStart        Stage = "send_start"
	StageSendOK           Stage = "send_ok"
	StageSendError        Stage = "send_error"
	StageUnexpectedError  Stage = "unexpected_error"
)

// stageLevels is the severity of each stage
var stageLevels = map[Stage]zapcore.Level{
	StageStart:            zapcore.InfoLevel,
	StageValidationOK:     zapcore.InfoLevel,
	StageValidationFailed: zapcore.WarnLevel,
	StageSpamRejected:     zapcore.WarnLevel,
	StageRateLimited:      zapcore.WarnLevel,
	StageEnvMissing:       zapcore.ErrorLevel,
	StageSendStart:        zapcore.InfoLevel,
	StageSendOK:           zapcore.InfoLevel,
	StageSendError:        zapcore.ErrorLevel,
	StageUnexpectedError:  zapcore.ErrorLevel,
}

// RequestIDFunc extracts a correlation id from a context
type RequestIDFunc func(ctx context.Context) string

// Logger provides structured logging for submission pipeline stages
type Logger struct {
	zapLogger *zap.Logger
	requestID RequestIDFunc
}

// New wraps an existing zap logger
func New(zapLogger *zap.Logger, requestID RequestIDFunc) *Logger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &Logger{zapLogger: zapLogger.Named("submission"), requestID: requestID}
}

// NewProduction builds a JSON logger writing to stdout
func NewProduction(service, environment string, requestID RequestIDFunc) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		// Fallback to a basic logger if config fails
		logger, _ = zap.NewProduction()
	}

	return New(logger.With(zap.String("service", service), zap.String("env", environment)), requestID)
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

func (l *Logger) log(ctx context.Context, flow string, stage Stage, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("flow", flow),
		zap.String("stage", string(stage)),
	}
	if l.requestID != nil {
		if id := l.requestID(ctx); id != "" {
			base = append(base, zap.String("request_id", id))
		}
	}
	l.zapLogger.Log(stageLevels[stage], string(stage), append(base, fields...)...)
}

// Start logs receipt of a submission
func (l *Logger) Start(ctx context.Context, flow string) {
	l.log(ctx, flow, StageStart, zap.String("status", "request_received"))
}

// ValidationOK logs a passed validation with presence flags of the optional fields
func (l *Logger) ValidationOK(ctx context.Context, flow string, fields map[string]bool) {
	l.log(ctx, flow, StageValidationOK, zap.Object("fields", presenceFlags(fields)))
}

// ValidationFailed logs the first failed field path and its user-facing message
func (l *Logger) ValidationFailed(ctx context.Context, flow, path, message string) {
	l.log(ctx, flow, StageValidationFailed, zap.String("path", path), zap.String("error", message))
}

// SpamRejected logs a submission rejected by the spam heuristic
func (l *Logger) SpamRejected(ctx context.Context, flow, reason string) {
	l.log(ctx, flow, StageSpamRejected, zap.String("reason", reason))
}

// RateLimited logs a denied submission. Only the kind of client is recorded.
func (l *Logger) RateLimited(ctx context.Context, flow string, local bool) {
	client := "remote"
	if local {
		client = "local"
	}
	l.log(ctx, flow, StageRateLimited, zap.String("ip", client))
}

// EnvMissing logs absent delivery configuration by key name
func (l *Logger) EnvMissing(ctx context.Context, flow string, missing []string, fallback bool) {
	status := "dev_fallback_no_email_sent"
	if !fallback {
		status = "delivery_unavailable"
	}
	l.log(ctx, flow, StageEnvMissing, zap.Strings("missing", missing), zap.String("status", status))
}

// SendStart logs the start of a provider call
func (l *Logger) SendStart(ctx context.Context, flow, provider string) {
	l.log(ctx, flow, StageSendStart, zap.String("status", "calling_provider"), zap.String("provider", provider))
}

// SendOK logs a successful send with the provider's message id, if any
func (l *Logger) SendOK(ctx context.Context, flow, id string) {
	idField := zap.String("id", id)
	if id == "" {
		idField = zap.Skip()
	}
	l.log(ctx, flow, StageSendOK, idField, zap.String("status", "email_sent"))
}

// SendError logs a provider failure
func (l *Logger) SendError(ctx context.Context, flow, message, code string) {
	codeField := zap.String("code", code)
	if code == "" {
		codeField = zap.Skip()
	}
	l.log(ctx, flow, StageSendError, zap.String("error", message), codeField)
}

// UnexpectedError logs any failure outside the expected taxonomy
func (l *Logger) UnexpectedError(ctx context.Context, flow string, err error) {
	l.log(ctx, flow, StageUnexpectedError, zap.Error(err))
}

type presenceFlags map[string]bool

func (p presenceFlags) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		enc.AddBool(k, p[k])
	}
	return nil
}
