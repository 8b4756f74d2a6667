// Package report holds the batch reconciliation report and its emitter.
//
// A Report has four ordered sections: new, diff, match and removed. Every
// entry describes one resource (locator, keyname, backend path and bucket);
// diff and match entries also carry the mismatching pixel count.
//
// The Emitter logs a human-readable summary and writes the JSON document to
// every configured report sink. Sinks are written independently: a failure
// on one sink does not undo the writes that already succeeded.
//
// # JSON shape
//
//	{
//	  "new":     [{"uri", "keyname", "path", "bucket"?}],
//	  "diff":    [{"uri", "keyname", "path", "bucket"?, "pixels"}],
//	  "match":   [{"uri", "keyname", "path", "bucket"?, "pixels"}],
//	  "removed": [{"uri", "keyname", "path", "bucket"?}]
//	}
package report
