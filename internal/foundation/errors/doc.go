// Package errors provides the classified error primitives used across docnav.
//
// Every error that crosses a package boundary is a ClassifiedError carrying a
// category, a severity, a retry strategy and free-form context. The CLI and
// HTTP adapters turn those classifications into exit codes and status codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryParse, "menudata.js is not a var declaration").
//		WithContext("path", path).
//		WithCause(parseErr).
//		Build()
package errors
