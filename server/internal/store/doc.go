// Package store holds the dataset currently served by launchdash-server.
//
// The store keeps exactly one Entry: an immutable dataset, the view built
// over it, a version number and the time it was installed. Swap replaces the
// entry as a whole, so a reader that took an Entry keeps a consistent
// (dataset, view) pair for as long as it holds it. Subscribers are notified
// of every swap with the new Entry.
package store
