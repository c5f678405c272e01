package common

import (
	"errors"
	"sync"
)

// RunParallel runs every function in its own goroutine and waits for all
// of them. It returns the joined errors, in argument order, and how many
// functions failed.
func RunParallel(funcs ...func() error) (error, int) {
	var wg sync.WaitGroup
	errs := make([]error, len(funcs))
	for i, fn := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = fn()
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	return errors.Join(errs...), failed
}
