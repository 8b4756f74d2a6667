// Package collection hydrates keyed collections of image handles from a
// batch root.
//
// A Source lists every PNG below a root locator:
//
//   - file:// roots are walked depth-first with an explicit stack. Each entry
//     is visited before its subtree and siblings are visited in name order.
//   - s3:// roots are listed recursively under the key prefix of the root
//     (the whole bucket when the prefix is empty).
//
// Hydrate turns the listing into a Collection keyed by keyname, preserving
// listing order. Keynames are assumed unique; a later entry replaces the
// handle of an earlier one without changing its position.
//
// HydratePair hydrates the A and B roots of a batch concurrently and waits
// for both. Object-store sources validate their bucket name and obtain their
// own storage client at construction time, before any listing.
package collection
