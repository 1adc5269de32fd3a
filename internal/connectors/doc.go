// Package connectors holds the adapters that bring import files into
// seedmerge. Each subpackage knows how to read rows from one kind of
// source and, where it can, report when new files arrive.
//
// Currently only the local filesystem is supported.
package connectors
