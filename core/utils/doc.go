// Package utils provides loose type conversion helpers.
//
// HTTP handlers use them to read query parameters such as ?limit=20 or
// ?exit_code=true without failing on odd but harmless input.
package utils
