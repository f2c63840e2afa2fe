package testutil

// Helpers for building stores from literal CSV fixtures.

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	schedule "railboard.dev/schedule"
	"railboard.dev/schedule/parse"
)

// BuildFeedZip assembles a feed zip from literal CSV rows, filling in
// minimal required files when absent.
func BuildFeedZip(t testing.TB, files map[string][]string) []byte {
	if files["routes.txt"] == nil {
		files["routes.txt"] = []string{"route_id"}
	}
	if files["stops.txt"] == nil {
		files["stops.txt"] = []string{"stop_id"}
	}
	if files["trips.txt"] == nil {
		files["trips.txt"] = []string{"trip_id"}
	}
	if files["stop_times.txt"] == nil {
		files["stop_times.txt"] = []string{"trip_id,stop_id"}
	}

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// LoadStore parses a fixture feed and loads it into a fresh store.
func LoadStore(t testing.TB, files map[string][]string) *schedule.Store {
	feed, err := parse.ParseStatic(BuildFeedZip(t, files))
	require.NoError(t, err)

	store := schedule.NewStore()
	store.Load(feed.Routes, feed.Stops, feed.StopTimesByTrip, feed.Shapes, feed.Trips)

	return store
}
