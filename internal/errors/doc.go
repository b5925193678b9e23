// Package errors provides structured, coded errors for the appcanvas
// builder.
//
// Every failure the builder can report carries a stable code (e.g. E201
// for an unknown component kind) looked up in a static registry, plus an
// optional detail, fix suggestion, and wrapped cause:
//
//	return errors.New(errors.CodeUnknownKind).
//		WithDetail("Kind 'hero-banner' is not in the palette").
//		WithSuggestion("Run 'appcanvas kinds' to list available kinds")
//
// Codes are grouped by subsystem: E1xx configuration, E2xx page model,
// E3xx storage, E4xx catalog, E5xx generation, E6xx server, E7xx CLI.
package errors
