// Package batch runs image reconciliations end to end.
//
// The Service turns user options into a pipeline: locators are
// protocolified, both roots are hydrated concurrently, the reconcile engine
// classifies every key, artifacts go to the write sink and the JSON report to
// every report sink. Single runs compare one pair of resources and batch copy
// mirrors a collection into a sink.
//
// The Handler exposes batch runs over HTTP (POST /batch) together with a
// health check. Feature wires both into the loader.
package batch
