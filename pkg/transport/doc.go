// Package transport defines the handler-facing contracts of the service:
// the storage interfaces the HTTP adapter consumes, the mapping from API
// errors to HTTP status codes, and the HTTP middleware chain (request ID
// propagation, panic recovery, structured request logging).
//
// The storage interfaces live here, with the consumer, rather than in the
// storage packages. Implementations (postgres, memory, S3-backed images)
// depend on this package's contracts, not the other way around.
package transport
