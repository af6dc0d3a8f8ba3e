// Package reactive wires UI inputs to chart outputs.
//
// A Callback declares one output and the inputs it depends on. Registry.Run
// takes the current selection and the IDs of the inputs that changed, runs
// every callback depending on at least one of them (in registration order)
// and returns one Update per output.
//
// Dashboard wires the two launch charts:
//
//	success-pie-chart             <- site-dropdown
//	success-payload-scatter-chart <- site-dropdown, payload-slider
package reactive
