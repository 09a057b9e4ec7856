// Package http implements the gateway's HTTP transport.
//
// Every request passes the admission pipeline built in [Handler.Init]:
// trace id, access log tap, CORS, rate limiting, route classification,
// authentication and authorization. Business handlers behind the pipeline
// are stubs.
package http
