// Package gtfs holds the static Caltrain timetable: the parsed calendar,
// trip and stop-time tables, a snapshot store with a cache-validity window,
// and the helpers that turn schedule clock strings into absolute instants.
//
// A Snapshot is immutable once built. The Store replaces its snapshot
// wholesale on a successful reload, so concurrent readers never observe a
// half-written dataset.
package gtfs
