// Package registry maps gitlet command names to operation handlers.
//
// A Registry is built once at startup from a fixed list of entries and is
// read-only afterwards, so it can be shared by every dispatch without
// locking. Lookup is a single map access with exact, case-sensitive names.
package registry
