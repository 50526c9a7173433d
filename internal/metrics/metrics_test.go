package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mkcdda/internal/cdda"
)

func gatherValue(t *testing.T, m *Metrics, name string) float64 {
	t.Helper()
	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		require.NotEmpty(t, family.GetMetric())
		metric := family.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			return c.GetValue()
		}
		return metric.GetGauge().GetValue()
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestObserveTrackAndSuccess(t *testing.T) {
	m := New()
	m.ObserveTrack(4705, 2351)
	m.ObserveTrack(2352, 0)
	now := time.Unix(1_700_000_000, 0)
	m.ObserveSuccess(4, 1500*time.Millisecond, now)

	assert.Equal(t, 2.0, gatherValue(t, m, "mkcdda_tracks_total"))
	assert.Equal(t, 7057.0, gatherValue(t, m, "mkcdda_payload_bytes_total"))
	assert.Equal(t, 2351.0, gatherValue(t, m, "mkcdda_padding_bytes_total"))
	assert.Equal(t, 4.0, gatherValue(t, m, "mkcdda_image_sectors"))
	assert.Equal(t, 1.5, gatherValue(t, m, "mkcdda_run_duration_seconds"))
	assert.Equal(t, float64(now.Unix()), gatherValue(t, m, "mkcdda_last_success_timestamp_seconds"))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "truncated payload", KindLabel(cdda.Errorf(cdda.TruncatedPayload, "a.wav", "short read")))
	assert.Equal(t, "usage error", KindLabel(cdda.UsageError))
	assert.Equal(t, "unknown", KindLabel(errors.New("boom")))
}

func TestObserveFailure(t *testing.T) {
	m := New()
	m.ObserveFailure(cdda.Errorf(cdda.UnsupportedFormat, "a.wav", "mono"), time.Second)
	assert.Equal(t, 1.0, gatherValue(t, m, "mkcdda_failures_total"))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveTrack(10, 2342)

	path := filepath.Join(t.TempDir(), "mkcdda.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mkcdda_tracks_total 1")
	assert.Contains(t, string(data), "# TYPE mkcdda_padding_bytes_total counter")
}

func TestWriteTextfileDisabled(t *testing.T) {
	assert.NoError(t, New().WriteTextfile(""))
}
