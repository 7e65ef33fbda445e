package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeTransport represents fetch failures: network errors,
	// non-2xx statuses and timeouts
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeRouting represents rejection of an unsupported domain or
	// path shape before extraction
	ErrorTypeRouting ErrorType = "routing"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting by the upstream site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeValidation represents the completeness gate rejecting an
	// extracted candidate
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeStorage represents persistence errors
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a pipeline-stage error
type ScrapeError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(errType ErrorType, source, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewTransport creates a new transport error
func NewTransport(source, message string, err error) *ScrapeError {
	return New(ErrorTypeTransport, source, message, err)
}

// NewRouting creates a new routing rejection
func NewRouting(source, message string) *ScrapeError {
	return New(ErrorTypeRouting, source, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(source string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, source, message, nil)
}

// NewValidation creates a new validation rejection
func NewValidation(source, message string) *ScrapeError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewStorage creates a new storage error
func NewStorage(message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, "", message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
