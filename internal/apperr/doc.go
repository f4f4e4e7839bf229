// Package apperr defines the closed error taxonomy used by every request
// processing stage. A ClassifiedError carries a Kind, and the HTTP status and
// operational flag are derived from that Kind through a fixed lookup table.
//
// Operational errors are expected failures (bad input, missing resources, bad
// credentials) that are safe to report to the caller. Non-operational errors
// are unexpected faults; the centralized error sink reports them generically
// and stops the process from accepting new traffic.
package apperr
