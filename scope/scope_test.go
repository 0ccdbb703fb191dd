package scope

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	fourier "github.com/Kreavita/fourier-fun"
	"github.com/Kreavita/fourier-fun/epicycle"
	"github.com/gopxl/beep"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCircle(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts := Options{SampleRate: beep.SampleRate(400), Frequency: 100, Volume: 1}
	world := fourier.R(fourier.P(-1, -1), fourier.P(1, 1))
	st := NewStreamer([]epicycle.Epicycle{{N: 1, C: 1}}, world, opts)
	samples := make([][2]float64, 5)
	n, ok := st.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 5, n)
	want := [][2]float64{{1, 0}, {0, -1}, {-1, 0}, {0, 1}, {1, 0}} // a quarter turn per sample
	for i := range want {
		assert.InDelta(t, want[i][0], samples[i][0], 1e-9, "left %d", i)
		assert.InDelta(t, want[i][1], samples[i][1], 1e-9, "right %d", i)
	}
	assert.NoError(t, st.Err())
}

func TestStreamNormalizesAndClamps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts := DefaultOptions()
	world := fourier.R(fourier.P(10, 10), fourier.P(30, 20))
	// a point at the right edge of the world, and one far outside
	st := NewStreamer([]epicycle.Epicycle{{N: 0, C: 30 + 15i}}, world, opts)
	samples := make([][2]float64, 2)
	st.Stream(samples)
	assert.InDelta(t, opts.Volume, samples[0][0], 1e-9)
	assert.InDelta(t, 0, samples[0][1], 1e-9)
	far := NewStreamer([]epicycle.Epicycle{{N: 0, C: 1000 - 1000i}}, world, opts)
	far.Stream(samples)
	assert.Equal(t, [2]float64{1, 1}, samples[0])
	empty := NewStreamer([]epicycle.Epicycle{{N: 0, C: 5}}, fourier.Rect{}, opts)
	empty.Stream(samples)
	assert.Equal(t, [2]float64{1, 0}, samples[1])
}

func TestWriteWAV(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts := DefaultOptions()
	opts.SampleRate = beep.SampleRate(8000)
	opts.Duration = 500 * time.Millisecond
	world := fourier.R(fourier.P(-2, -2), fourier.P(2, 2))
	st := NewStreamer([]epicycle.Epicycle{{N: 1, C: 1}, {N: -2, C: 0.5i}}, world, opts)
	path := filepath.Join(t.TempDir(), "scope.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, st, opts))
	require.NoError(t, f.Close())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(44+4000*2*2), info.Size(), "header and 4000 stereo 16-bit samples")
}
