// Package diagnostic collects the structured warnings and errors reported while
// loading a reflectgen config, planning registries and checking paths.
//
// Each diagnostic carries a stable code, the type and field path it concerns,
// and optional "did you mean" suggestions.
package diagnostic
