// Package domain contains the core business entities of the contacts
// service: contacts and the users allowed to manage them.
package domain
