package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// ParseZip parses a GTFS bundle from raw zip bytes into a Snapshot.
// calendar_dates.txt is optional; stop_times.txt, trips.txt and calendar.txt
// are required and their absence fails the whole parse.
func ParseZip(data []byte) (*Snapshot, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open gtfs archive: %w", err)
	}

	snap := &Snapshot{LoadedAt: time.Now()}
	fileMap := map[string]any{
		"stop_times.txt":     &snap.StopTimes,
		"trips.txt":          &snap.Trips,
		"calendar.txt":       &snap.Calendars,
		"calendar_dates.txt": &snap.CalendarDates,
	}

	seen := map[string]bool{}
	for _, zipFile := range archive.File {
		name := strings.ToLower(zipFile.Name)
		destination, wanted := fileMap[name]
		if !wanted {
			continue
		}
		reader, err := zipFile.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		// A per-file csv.Reader keeps concurrent parses independent;
		// FieldsPerRecord -1 lets rows with missing trailing columns
		// unmarshal with empty fields instead of failing the file.
		r := csv.NewReader(reader)
		r.FieldsPerRecord = -1
		err = gocsv.UnmarshalCSV(r, destination)
		reader.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		seen[name] = true
	}

	for _, required := range []string{"stop_times.txt", "trips.txt", "calendar.txt"} {
		if !seen[required] {
			return nil, fmt.Errorf("gtfs archive missing %s", required)
		}
	}

	snap.Build()
	log.Debug().
		Int("stopTimes", len(snap.StopTimes)).
		Int("trips", len(snap.Trips)).
		Int("calendars", len(snap.Calendars)).
		Int("calendarDates", len(snap.CalendarDates)).
		Msg("Parsed GTFS snapshot")
	return snap, nil
}

// ParseZipFile parses a GTFS bundle from a local zip on disk.
func ParseZipFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read local gtfs bundle: %w", err)
	}
	return ParseZip(data)
}
