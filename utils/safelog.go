// utils/safelog.go
// Logging helpers that mask personal and financial data in production.
// In development everything is printed as-is; with GIN_MODE=release (or
// ENVIRONMENT=production) IBANs and bearer tokens are redacted before
// they reach the log sink.

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction switches masking on.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	// LogLevel filters output (DEBUG, INFO, WARN, ERROR).
	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	ibanPattern   = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`)
	bearerPattern = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-_\.]+`)
)

// Sanitize masks sensitive substrings in production.
func Sanitize(msg string) string {
	if !IsProduction {
		return msg
	}
	msg = ibanPattern.ReplaceAllStringFunc(msg, func(iban string) string {
		return MaskIBAN(iban)
	})
	msg = bearerPattern.ReplaceAllString(msg, "${1}[REDACTED]")
	return msg
}

// MaskIBAN keeps the country code and the last 4 characters.
func MaskIBAN(iban string) string {
	if len(iban) < 8 {
		return "****"
	}
	return iban[:2] + strings.Repeat("*", len(iban)-6) + iban[len(iban)-4:]
}

func Debugf(format string, args ...interface{}) {
	if LogLevel <= LogLevelDebug {
		log.Print(Sanitize(fmt.Sprintf("[DEBUG] "+format, args...)))
	}
}

func Infof(format string, args ...interface{}) {
	if LogLevel <= LogLevelInfo {
		log.Print(Sanitize(fmt.Sprintf("[INFO] "+format, args...)))
	}
}

func Warnf(format string, args ...interface{}) {
	if LogLevel <= LogLevelWarn {
		log.Print(Sanitize(fmt.Sprintf("[WARN] "+format, args...)))
	}
}

func Errorf(format string, args ...interface{}) {
	if LogLevel <= LogLevelError {
		log.Print(Sanitize(fmt.Sprintf("[ERROR] "+format, args...)))
	}
}
