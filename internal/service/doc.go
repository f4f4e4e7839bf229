// Package service contains the application-specific use cases of the
// contacts API. It orchestrates the stores defined in internal/store and
// reports every failure as an apperr.ClassifiedError, so the HTTP layer never
// inspects storage errors itself.
//
// Services receive their dependencies through constructor injection and
// apply transactional boundaries when an operation spans several queries.
package service
