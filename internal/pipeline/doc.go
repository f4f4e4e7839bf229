// Package pipeline executes one HTTP request as an ordered list of stages:
// authenticate, decode and validate the request facets, then run the route
// handler. The first stage to fail stops the run and its error goes to the
// Sink, which is the only place that turns errors into responses.
//
// A Runtime holds the process-wide shutdown state. The Sink signals it when
// a non-operational error is seen; from then on new requests are refused
// with 503 while in-flight requests finish.
package pipeline
