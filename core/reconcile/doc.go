// Package reconcile classifies two hydrated collections of image handles.
//
// The Engine joins collection A (the newer run) and collection B (the
// reference run) by keyname and sorts every key into one of four sections:
//
//   - new: present in A only
//   - removed: present in B only
//   - match: present in both, zero mismatching pixels
//   - diff: present in both, one or more mismatching pixels
//
// Common keys are diffed one pair at a time by the Differ, so decoded pixel
// buffers for at most one pair are alive at any moment. When a Saver is
// configured the engine also persists artifacts: the A image of every new
// key, and for every diff key the diff image (named after the diff pattern)
// followed by the A image, so the sink always holds the newest reference.
//
// Any error aborts the run and the partial report is discarded.
//
// # Usage
//
//	differ := reconcile.NewDiffer(0.1, logger)
//	engine := reconcile.NewEngine(differ, saver, "[name].diff.png", logger)
//	rep, err := engine.Reconcile(ctx, collA, collB)
package reconcile
