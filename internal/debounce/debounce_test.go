package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan string, within time.Duration) (string, bool) {
	t.Helper()
	select {
	case v, open := <-ch:
		return v, open
	case <-time.After(within):
		return "", false
	}
}

func TestDebouncer_OnlyFinalValue(t *testing.T) {
	d := New[string](30 * time.Millisecond)
	defer d.Stop()

	start := time.Now()
	for _, v := range []string{"b", "ba", "bat", "batm", "batman"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond)
	}
	last := time.Now()

	got, ok := receive(t, d.C(), time.Second)
	require.True(t, ok, "expected a settled value")
	assert.Equal(t, "batman", got)
	assert.GreaterOrEqual(t, time.Since(last), 30*time.Millisecond-5*time.Millisecond)
	assert.Greater(t, time.Since(start), 30*time.Millisecond)

	// Nothing else should follow
	_, ok = receive(t, d.C(), 80*time.Millisecond)
	assert.False(t, ok, "only one value should be delivered per burst")
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	d := New[string](20 * time.Millisecond)
	defer d.Stop()

	d.Set("inception")
	got, ok := receive(t, d.C(), time.Second)
	require.True(t, ok)
	assert.Equal(t, "inception", got)

	d.Set("joker")
	got, ok = receive(t, d.C(), time.Second)
	require.True(t, ok)
	assert.Equal(t, "joker", got)
}

func TestDebouncer_UndeliveredValueReplaced(t *testing.T) {
	d := New[string](10 * time.Millisecond)
	defer d.Stop()

	d.Set("first")
	time.Sleep(40 * time.Millisecond) // settled but not read
	d.Set("second")
	time.Sleep(40 * time.Millisecond)

	got, ok := receive(t, d.C(), time.Second)
	require.True(t, ok)
	assert.Equal(t, "second", got)

	_, ok = receive(t, d.C(), 30*time.Millisecond)
	assert.False(t, ok)
}

func TestDebouncer_Stop(t *testing.T) {
	d := New[string](20 * time.Millisecond)

	d.Set("batman")
	d.Stop()
	d.Set("superman")

	_, ok := receive(t, d.C(), 80*time.Millisecond)
	assert.False(t, ok, "stopped debouncer should not deliver")

	_, open := <-d.C()
	assert.False(t, open, "C is closed after Stop")
	assert.NotPanics(t, d.Stop)
}

func TestGen(t *testing.T) {
	var g Gen

	first := g.Next()
	assert.True(t, g.Current(first))

	second := g.Next()
	assert.False(t, g.Current(first), "older tag should be stale")
	assert.True(t, g.Current(second))
}
