// Package profiling accumulates per-frame CPU time by name so slow frames can
// be explained in a single log line.
package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Frame collects named durations for the frame in progress.
type Frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

// NewFrame returns an empty frame profile.
func NewFrame() *Frame {
	return &Frame{totals: make(map[string]time.Duration)}
}

var current = NewFrame()

// Current returns the profile shared by the render threads.
func Current() *Frame { return current }

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("surface.DrawFrame")()
func Track(name string) func() { return current.Track(name) }

// ResetFrame clears the shared profile. Call at the start of each frame.
func ResetFrame() { current.Reset() }

// TopNCurrentFrame formats the n most expensive entries of the shared profile.
func TopNCurrentFrame(n int) string { return current.TopN(n) }

func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() {
		f.Add(name, time.Since(start))
	}
}

func (f *Frame) Add(name string, d time.Duration) {
	f.mu.Lock()
	f.totals[name] += d
	f.mu.Unlock()
}

func (f *Frame) Reset() {
	f.mu.Lock()
	clear(f.totals)
	f.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (f *Frame) Snapshot() map[string]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Duration, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out
}

// SumWithPrefix totals every entry whose name starts with prefix.
func (f *Frame) SumWithPrefix(prefix string) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum time.Duration
	for k, v := range f.totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest entries, e.g. "surface.DrawFrame:4.2ms, surface.Swap:1ms".
func (f *Frame) TopN(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	snap := f.Snapshot()
	list := make([]entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:max(n, 0)] {
		parts = append(parts, e.name+":"+formatMs(e.dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops a trailing ".0".
func formatMs(d time.Duration) string {
	tenths := d.Microseconds() / 100
	s := strconv.FormatInt(tenths/10, 10)
	if frac := tenths % 10; frac != 0 {
		s += "." + strconv.FormatInt(frac, 10)
	}
	return s + "ms"
}
