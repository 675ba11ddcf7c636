// Package api defines the wire-level types for the bookden service:
// user and book records, the error taxonomy, ID generation and
// validation, request validation, and pagination helpers.
//
// Types here are shared between the transport layer and the storage
// adapters; they carry JSON tags matching the public API surface.
package api
