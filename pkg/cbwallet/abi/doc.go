// Package abi describes the C ABI of the native wallet engine as a Go
// interface.
//
// Every engine function keeps its C shape:
//
//	entity_create(args..., int* error_out) -> handle or NULL
//	entity_get_<field>(handle, int* error_out) -> value or NULL
//	entity_get_length(collection, int* error_out) -> uint32
//	entity_get_at(collection, uint32 index, int* error_out) -> handle or NULL
//	entity_destroy(handle)
//
// Two implementations exist: package cabi links the real engine through cgo,
// and package fakeengine is an instrumented in-memory engine used by tests and
// by builds without the native library.
//
// Nothing outside the binding packages should hold a Handle. Application code
// works with the typed wrappers in the sibling packages (keys, contacts,
// transactions, ...), which own exactly one handle each.
package abi
