// Package http provides the HTTP implementation of the queryd transports.
// Requests are POSTed to /query with the serialized message as the body;
// the serialized response is the response body. Useful for debugging and
// for environments where raw sockets are inconvenient, at the cost of
// higher per-request overhead than the tcp and unix transports.
package http
