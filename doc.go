// Package commuter resolves next upcoming Caltrain departures for an
// origin/destination pair. It reconciles three independently-evolving
// sources: the static GTFS timetable (service calendars, trips, stop
// times), a GTFS-Realtime TripUpdates feed, and a scraped status page
// keyed by train display number.
//
// A resolution runs the pipeline in strict sequence: ensure the dataset
// snapshot is fresh, resolve the active service for the query date, map
// station codes to directional stop ids, materialize scheduled times in
// the operator timezone, overlay realtime delays, then classify, filter,
// sort and truncate. Missing sources degrade the answer rather than fail
// it, and every result carries provenance flags so the presentation layer
// can label stale, fallback or synthetic output.
package commuter
