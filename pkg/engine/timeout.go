package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/chazu/polypanel/pkg/polycube"
)

// EvalTimeout is the default limit for a single evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	polycube *polycube.Polycube
	errors   []EvalError
	err      error
}

// waitWithTimeout waits for the evaluation of generation gen. A result that
// arrives after a newer evaluation started is discarded.
//
// On timeout the evaluating goroutine keeps running; its result lands in the
// buffered channel and is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*polycube.Polycube, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()
		if gen != current {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.polycube, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
