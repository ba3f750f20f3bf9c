// Package macrolib ships the built-in macros: small, complete examples
// that exercise every expansion phase through the public builder and
// introspection APIs. The CLI registers them by default and the
// integration tests run against them.
package macrolib
