// Package view implements the launch-record view model: the two pure
// computations behind the dashboard's charts.
//
// PieData(site) counts successful launches per site for the AllSites
// sentinel, or Success vs Failure for a single site. ScatterData(site, r)
// returns one point per launch whose payload lies in the closed range r,
// labelled with its outcome and booster category.
//
// A View holds a reference to an immutable dataset.Dataset and keeps no other
// state; identical inputs always yield identical outputs. Site names are not
// validated here; callers check them with Dataset.ValidSite first.
package view
