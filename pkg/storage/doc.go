// Package storage provides utilities shared across storage adapter
// implementations, currently the sentinel errors.
//
// Storage adapters (memory, postgres) implement the transport.UserStore
// and transport.BookStore interfaces defined in pkg/transport/handler.go.
// This package contains only shared types, not the interfaces themselves.
package storage
