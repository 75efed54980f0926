package main

import (
	"log"
	"sync"
)

// newProgressLogger returns a render progress hook that logs every time
// another 1/steps of the image is finished.
func newProgressLogger(steps int) func(done float32) {
	var (
		m    sync.Mutex
		last int
	)
	return func(done float32) {
		step := int(done * float32(steps))

		m.Lock()
		defer m.Unlock()
		if step <= last {
			return
		}
		last = step
		log.Printf("finished: %3.0f%%", done*100)
	}
}
