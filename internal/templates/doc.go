// Package templates renders text/template bodies and writes generated files
// below a root directory without letting a relative path escape it.
package templates
