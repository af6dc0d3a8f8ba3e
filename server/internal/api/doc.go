// Package api implements the HTTP REST API for launchdash-server.
//
// New(store, dashboard, chart, metrics) returns an http.Handler that serves:
//
//	GET /api/v1/health                — dataset size, source, load time, version
//	GET /api/v1/layout                — title, dropdown options, slider bounds and default value
//	GET /api/v1/pie?site=             — pie slices (view.PieData)
//	GET /api/v1/scatter?site=&low=&high=
//	                                  — scatter points (view.ScatterData)
//	GET /api/v1/charts/pie?site=&format=png|svg
//	GET /api/v1/charts/scatter?site=&low=&high=&format=png|svg
//	                                  — rendered chart images
//
// All endpoints:
//   - Return 405 for non-GET methods
//   - Default site to "All Sites" and low/high to the dataset's payload bounds
//   - Return 400 for an unknown site, a non-numeric bound or low > high
//   - Return 500 when the dataset holds an outcome class other than 0 or 1
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
