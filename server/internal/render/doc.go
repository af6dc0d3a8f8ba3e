// Package render draws the dashboard's pie and scatter charts with go-chart.
//
// Pie(w, data, opts) and Scatter(w, data, opts) write a PNG or SVG image of
// the given view data. Pie labels carry the slice percentage. The scatter
// chart draws one point-only series per booster category, keeps the outcome
// axis in the order given by ScatterData.CategoryOrder, and scales each dot
// by payload mass.
//
// Data with nothing to draw (no points, or a pie whose slices are all zero)
// produces a blank placeholder carrying the chart title, never an error.
package render
