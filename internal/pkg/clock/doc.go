// Package clock abstracts the current time for code that stamps outgoing
// mail.
package clock
