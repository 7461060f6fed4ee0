// Package validator provides a small validation abstraction for request and
// domain structs.
//
// Business code should depend on the Validator interface so validation can be
// shared and tested consistently. The concrete implementation wraps
// go-playground/validator v10 with English translations; domain rules with a
// fixed user-facing message are added through RegisterRule.
package validator
