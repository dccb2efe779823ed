// Package client provides the client library for the query service.
//
// A client is created with a transport and a serializer and exposes the
// service operations as plain method calls. Application errors reported
// by the service surface as regular Go errors.
package client
