// Package mail defines the contracts for sending email messages and an SMTP
// transport built on emersion/go-smtp.
//
// Handlers and use cases work with the Mail interface and Message payload.
// The transport settings come from configuration through Resolve, and the
// live transport is kept in a Holder so it can be rebuilt while requests are
// in flight.
package mail
