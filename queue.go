package main

import (
	"fmt"
	"sync"
)

// ImportQueue collects input files and processes them one at a time.
// ffmpeg, the separator and whisper are all heavyweight, so imports run
// strictly sequentially even when many files are queued.
type ImportQueue struct {
	mu    sync.Mutex
	items []string
	seen  map[string]bool
}

func NewImportQueue() *ImportQueue {
	return &ImportQueue{seen: make(map[string]bool)}
}

// Add queues a file for import. Duplicates are ignored.
func (q *ImportQueue) Add(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.seen[path] {
		fmt.Printf("Skipping duplicate: %s\n", path)
		return
	}
	q.seen[path] = true
	q.items = append(q.items, path)
}

func (q *ImportQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Run processes every queued file in order. A failed item is reported
// and skipped; the rest of the queue still runs.
func (q *ImportQueue) Run(process func(path string) error) int {
	q.mu.Lock()
	items := make([]string, len(q.items))
	copy(items, q.items)
	q.mu.Unlock()

	failed := 0
	for i, path := range items {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(items), path)
		if err := process(path); err != nil {
			fmt.Printf("Error: %v\n", err)
			failed++
		}
	}
	return failed
}
