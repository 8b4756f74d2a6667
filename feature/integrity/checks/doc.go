// Package checks implements the individual batch root checks used by the
// integrity feature.
package checks
