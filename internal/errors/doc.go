// Package errors maps nucdash failures onto HTTP responses.
//
// Handlers return plain errors. ErrorHandler turns them into RFC 7807 problem
// documents: pipeline errors from the dataprocessing package become 422 or 503
// problems, APIError values keep their own status, and context deadlines become 504.
package errors
