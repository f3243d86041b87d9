// Package gtfsrt decodes a GTFS-Realtime TripUpdates protobuf payload into
// per-trip delay records. It does no fetching itself; callers hand it raw
// bytes. Malformed or partial entries are dropped, never fatal, so feed
// corruption on one trip cannot suppress delays for the rest.
package gtfsrt
