// Package diagnostic provides structured warnings, errors, and
// informational notes produced while reading a method table source.
//
// Key capabilities:
//   - Dropped entry warnings (methods with no implementation)
//   - Skipped block notes (top-level braces that are not tables)
//   - A combined error view for callers that treat errors as fatal
package diagnostic
