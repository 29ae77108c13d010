// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Upstream request URLs carry
// the public key and a request signature, and database errors can carry connection
// strings; neither should reach a log line verbatim.
package redact

import (
	"regexp"
	"sync"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
)

// Precompiled regex patterns
var (
	// Signed upstream query parameters (apikey and hash); the parameter name is kept
	signedQueryRegex = regexp.MustCompile(`(?i)\b(apikey|hash)=[^&\s"']+`)

	// Database connection strings
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb|db|database|connection)://[^@\s]+@`)

	// Credentials and tokens
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)
	apiKeyRegex   = regexp.MustCompile(
		`(?i)(api[_-]?key|private[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
	)
	awsKeyRegex = regexp.MustCompile(`(AKIA|AccessKey(Id)?)([^a-zA-Z0-9])?[A-Z0-9]{8,}`)

	// Stack trace fragments
	stackTraceRegex = regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|GRANT)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|DATABASE|SCHEMA|VIEW)(?:[\s\w,*()='"$]+)?`,
	)

	// All patterns in application order
	patterns = []*regexp.Regexp{
		signedQueryRegex, dbConnRegex, passwordRegex, apiKeyRegex,
		awsKeyRegex, stackTraceRegex, sqlRegex,
	}

	// Replacements may reference capture groups
	patternPlaceholders = map[*regexp.Regexp]string{
		signedQueryRegex: "${1}=" + RedactedKeyPlaceholder,
		dbConnRegex:      RedactedCredentialPlaceholder,
		passwordRegex:    RedactedCredentialPlaceholder,
		apiKeyRegex:      RedactedKeyPlaceholder,
		awsKeyRegex:      RedactedKeyPlaceholder,
		stackTraceRegex:  "[STACK_TRACE_REDACTED]",
		sqlRegex:         "[REDACTED_SQL]",
	}

	mu sync.RWMutex
)

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	mu.RLock()
	defer mu.RUnlock()

	result := input
	for _, pattern := range patterns {
		placeholder := RedactionPlaceholder
		if ph, ok := patternPlaceholders[pattern]; ok {
			placeholder = ph
		}
		result = pattern.ReplaceAllString(result, placeholder)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// URL masks the apikey and hash query parameters of an upstream request URL
// while leaving the host, path and remaining parameters readable.
func URL(rawURL string) string {
	return signedQueryRegex.ReplaceAllString(rawURL, patternPlaceholders[signedQueryRegex])
}
