// Package workspace provides a client for a remote document-workspace
// API (pages, databases, blocks, users, comments) with a TTL-bounded
// read cache in front of it.
//
// Every read operation is keyed by its operation tag and parameter set
// and answered from the cache when fresh. Every write operation
// invalidates exactly the cached reads it could have staled, by exact
// key or by pattern over related keys.
package workspace
