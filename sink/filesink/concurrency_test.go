package filesink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/philipp01105/logsink/sink"
)

// testConcurrentAppends drives N goroutines each appending K entries to
// one sink, then verifies the file holds exactly N*K complete,
// non-interleaved records.
func testConcurrentAppends(t *testing.T, name string, s sink.Sink) {
	t.Helper()

	const goroutines = 8
	const perGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				ok, err := s.Append(msgEntry(fmt.Sprintf("writer-%02d-entry-%03d", g, i)))
				if err != nil {
					t.Errorf("writer %d: append %d: %v", g, i, err)
					return
				}
				if !ok {
					t.Errorf("writer %d: append %d overflowed", g, i)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	seen := make(map[string]int)
	scanner := bufio.NewScanner(f)
	lines := 0
	for scanner.Scan() {
		lines++
		seen[scanner.Text()]++
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	if lines != goroutines*perGoroutine {
		t.Fatalf("file holds %d records, want %d", lines, goroutines*perGoroutine)
	}
	for g := 0; g < goroutines; g++ {
		for i := 0; i < perGoroutine; i++ {
			key := fmt.Sprintf("writer-%02d-entry-%03d", g, i)
			if seen[key] != 1 {
				t.Errorf("record %q appears %d times, want 1", key, seen[key])
			}
		}
	}
}

func TestExclusive_ConcurrentAppends(t *testing.T) {
	name := filepath.Join(t.TempDir(), "concurrent-exclusive.log")
	s, err := NewExclusive(name, lineFormatter{}, WithNoSizeLimit())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	testConcurrentAppends(t, name, s)
}

func TestMutex_ConcurrentAppends(t *testing.T) {
	name := filepath.Join(t.TempDir(), "concurrent-mutex.log")
	s, err := NewMutex(name, lineFormatter{}, WithNoSizeLimit())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	testConcurrentAppends(t, name, s)
}

func TestAtomic_ConcurrentAppends(t *testing.T) {
	name := filepath.Join(t.TempDir(), "concurrent-atomic.log")
	s, err := NewAtomic(name, lineFormatter{}, WithNoSizeLimit())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	testConcurrentAppends(t, name, s)
}
