// Package cmd implements the queryd command line interface.
//
// The CLI has two main entry points: "serve" starts the query service and
// "query" runs individual operations against a running server. Both read
// their configuration from flags and QUERYD_ prefixed environment
// variables.
package cmd
