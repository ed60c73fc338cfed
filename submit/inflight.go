package submit

type inflightOp struct {
	acquire bool
	key     string
	result  chan<- bool
}

// inflight tracks submissions currently being processed, keyed by
// (form, email). A single goroutine owns the set, callers talk to it
// over a channel.
type inflight struct {
	ops chan inflightOp
}

func newInflight() *inflight {
	g := &inflight{ops: make(chan inflightOp)}
	go func() {
		held := make(map[string]bool)

		for op := range g.ops {
			if op.acquire {
				op.result <- !held[op.key]
				held[op.key] = true
			} else {
				delete(held, op.key)
			}
		}
	}()
	return g
}

// acquire returns false when the key is already being processed.
func (g *inflight) acquire(key string) bool {
	result := make(chan bool)
	g.ops <- inflightOp{acquire: true, key: key, result: result}
	return <-result
}

func (g *inflight) release(key string) {
	g.ops <- inflightOp{key: key}
}
