// Package errors provides the coded error taxonomy shared by the server,
// the navigator and the CLI.
//
// # Error Codes
//
// Each error has a unique code that maps to a category, a short message,
// a detailed explanation and, for server-side failures, an HTTP status:
//
//	E100  RouteNotFound     404
//	E101  ResolutionError   500
//	E102  NotImplemented    500
//	E103  ComponentFailed   500
//	E110  TransportError
//	E120  WireDecode
//	E130  Config
//
// Errors compare by code, so a freshly built error matches the package
// sentinel:
//
//	err := errors.New(errors.CodeRouteNotFound).WithDetail("/missing")
//	stderrors.Is(err, errors.ErrRouteNotFound) // true
//	errors.HTTPStatus(err)                     // 404
package errors
