// Package api binds the contacts and account use cases to HTTP routes. Every
// route runs through the request pipeline: handlers here only translate
// between request models and services and return classified errors, leaving
// responses for failures to the pipeline's error sink.
package api
