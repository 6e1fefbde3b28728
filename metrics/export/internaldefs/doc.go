// Package internaldefs holds the shared metric name table used by the
// exporter packages. It is not part of the public API surface.
package internaldefs
