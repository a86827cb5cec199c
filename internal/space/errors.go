package space

import (
	"errors"
	"fmt"
)

// RequestError is a transport failure or a non-2xx response.
type RequestError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Space API request on %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("Space API request on %s failed with status: %s", e.URL, e.Status)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError is a successful response whose body is not the expected JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed Space API response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type CloneURLStatus int

const (
	CloneURLFound CloneURLStatus = iota
	// CloneURLMissing is a successful response without an httpUrl.
	CloneURLMissing
	CloneURLMalformed
	CloneURLRequestFailed
)

func (s CloneURLStatus) String() string {
	switch s {
	case CloneURLFound:
		return "found"
	case CloneURLMissing:
		return "httpUrl missing from response"
	case CloneURLMalformed:
		return "malformed response"
	case CloneURLRequestFailed:
		return "request failed"
	default:
		return fmt.Sprintf("CloneURLStatus(%d)", int(s))
	}
}

type CloneURLResult struct {
	Status CloneURLStatus
	URL    string
	Err    error
}

func (r CloneURLResult) Found() bool {
	return r.Status == CloneURLFound
}

// Reason describes a non-found result for diagnostics.
func (r CloneURLResult) Reason() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %v", r.Status, r.Err)
	}
	return r.Status.String()
}

func cloneURLFailure(err error) CloneURLResult {
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return CloneURLResult{Status: CloneURLMalformed, Err: err}
	}
	return CloneURLResult{Status: CloneURLRequestFailed, Err: err}
}
