// Package api provides the HTTP API server for Orgchart.
//
// # Overview
//
// The API exposes the same pipeline the CLI uses, behind a chi router:
//
//	GET  /api/datasets                      list data sets
//	GET  /api/datasets/{name}/layout        computed layout as JSON
//	GET  /api/datasets/{name}/render        rendered artifact (?format=, ?style=)
//	POST /api/charts                        save a custom chart, returns its id
//	GET  /api/charts                        list saved charts
//	GET  /api/charts/{id}/layout            layout for a saved chart
//	DELETE /api/charts/{id}                 remove a saved chart
//	GET  /healthz                           liveness probe
//
// Saving a chart also fills the Custom data-set slot, so the newest saved
// chart is selectable by name like the built-in sets. Requesting Custom
// while no chart has been saved answers 409, mirroring the selection
// semantics of the dataset package.
//
// # Errors
//
// Errors are returned as JSON envelopes carrying the structured code from
// the errors package:
//
//	{"error": {"code": "DATASET_NOT_FOUND", "message": "unknown data set: Nope"}}
package api
