// Package logger wraps zap's sugared logger with key-based redaction so
// tokens, passwords and emails never reach the log sink, and user ids only
// appear as salted hashes.
package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	sugar    *zap.SugaredLogger
	redact   bool
	hashSalt string
}

// New builds a logger for the given mode: "prod" emits JSON at info level,
// anything else is a development console logger at debug level.
func New(mode string) (*Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(mode, "prod") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	redact := true
	if v, ok := os.LookupEnv("LOG_REDACTION_ENABLED"); ok {
		switch strings.TrimSpace(strings.ToLower(v)) {
		case "0", "false", "no", "off":
			redact = false
		}
	}

	return &Logger{
		sugar:    base.Sugar(),
		redact:   redact,
		hashSalt: os.Getenv("LOG_HASH_SALT"),
	}, nil
}

func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

func (l *Logger) With(kvs ...interface{}) *Logger {
	clean := l.sanitizeKVs(kvs)
	return &Logger{
		sugar:    l.sugar.With(clean...),
		redact:   l.redact,
		hashSalt: l.hashSalt,
	}
}

func (l *Logger) Debug(msg string, kvs ...interface{}) {
	l.sugar.Debugw(msg, l.sanitizeKVs(kvs)...)
}

func (l *Logger) Info(msg string, kvs ...interface{}) {
	l.sugar.Infow(msg, l.sanitizeKVs(kvs)...)
}

func (l *Logger) Warn(msg string, kvs ...interface{}) {
	l.sugar.Warnw(msg, l.sanitizeKVs(kvs)...)
}

func (l *Logger) Error(msg string, kvs ...interface{}) {
	l.sugar.Errorw(msg, l.sanitizeKVs(kvs)...)
}

func (l *Logger) Fatal(msg string, kvs ...interface{}) {
	l.sugar.Fatalw(msg, l.sanitizeKVs(kvs)...)
}

var redactedKeyFragments = []string{"token", "password", "secret", "refresh", "email", "authorization"}

var hashedKeys = map[string]bool{
	"user_id":    true,
	"creator_id": true,
}

func (l *Logger) sanitizeKVs(kvs []interface{}) []interface{} {
	if !l.redact || len(kvs) < 2 {
		return kvs
	}
	out := make([]interface{}, len(kvs))
	copy(out, kvs)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		lower := strings.ToLower(key)
		if hashedKeys[lower] {
			out[i+1] = l.hashValue(fmt.Sprint(out[i+1]))
			continue
		}
		for _, fragment := range redactedKeyFragments {
			if strings.Contains(lower, fragment) {
				out[i+1] = "[REDACTED]"
				break
			}
		}
		if s, isStr := out[i+1].(string); isStr && looksLikeJWT(s) {
			out[i+1] = "[REDACTED]"
		}
	}
	return out
}

func (l *Logger) hashValue(v string) string {
	sum := sha256.Sum256([]byte(l.hashSalt + v))
	return "hash:" + hex.EncodeToString(sum[:])[:12]
}

// looksLikeJWT catches tokens that slip through under a benign key.
func looksLikeJWT(s string) bool {
	return strings.HasPrefix(s, "eyJ") && strings.Count(s, ".") == 2
}
