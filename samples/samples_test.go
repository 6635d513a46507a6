// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package samples_test

import (
	"sync"
	"testing"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/samples"
	"github.com/creachadair/mds/mapset"
)

func TestValid(t *testing.T) {
	if samples.Len() != 5 {
		t.Errorf("Len: got %d, want 5", samples.Len())
	}
	for i, doc := range samples.All() {
		if err := format.Check(doc); err != nil {
			t.Errorf("Sample %d is invalid: %v", i, err)
		}
		if got, err := format.Format(doc, format.Minify); err != nil || got.Text != doc {
			t.Errorf("Sample %d is not minified: %v", i, err)
		}
	}
}

func TestGet(t *testing.T) {
	all := samples.All()
	for i := -7; i < 12; i++ {
		want := all[((i%len(all))+len(all))%len(all)]
		if got := samples.Get(i); got != want {
			t.Errorf("Get(%d): got sample %q, want %q", i, got[:20], want[:20])
		}
	}

	// All returns a copy.
	all[0] = "changed"
	if samples.Get(0) == "changed" {
		t.Error("Modifying the result of All changed the samples")
	}
}

func TestCycle(t *testing.T) {
	var c samples.Cycle
	for i := range 2 * samples.Len() {
		if got := c.Index(); got != i%samples.Len() {
			t.Errorf("Index: got %d, want %d", got, i%samples.Len())
		}
		if got, want := c.Next(), samples.Get(i); got != want {
			t.Errorf("Next %d: wrong sample", i)
		}
	}
}

func TestCycleConcurrent(t *testing.T) {
	var c samples.Cycle
	var mu sync.Mutex
	seen := mapset.New[string]()

	var wg sync.WaitGroup
	for range samples.Len() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := c.Next()
			mu.Lock()
			defer mu.Unlock()
			seen.Add(doc)
		}()
	}
	wg.Wait()
	if seen.Len() != samples.Len() {
		t.Errorf("Concurrent Next: saw %d distinct samples, want %d", seen.Len(), samples.Len())
	}
	if c.Index() != 0 {
		t.Errorf("Index after a full cycle: got %d, want 0", c.Index())
	}
}
