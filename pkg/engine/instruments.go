package engine

// Observer records a sample.
type Observer interface {
	Observe(float64)
}

// Incrementer counts events.
type Incrementer interface {
	Inc()
}

// Instruments receive measurements of a table that are not tracked by the
// shard statistics. Ingest times are in microseconds.
type Instruments struct {
	IngestTime     Observer
	IngestWaitTime Observer
	IterMove       Incrementer
	IterSeek       Incrementer
	IterNew        Incrementer
}

type noopObserver struct{}

func (noopObserver) Observe(float64) {}

type noopIncrementer struct{}

func (noopIncrementer) Inc() {}

func (i Instruments) withDefaults() *Instruments {
	if i.IngestTime == nil {
		i.IngestTime = noopObserver{}
	}
	if i.IngestWaitTime == nil {
		i.IngestWaitTime = noopObserver{}
	}
	if i.IterMove == nil {
		i.IterMove = noopIncrementer{}
	}
	if i.IterSeek == nil {
		i.IterSeek = noopIncrementer{}
	}
	if i.IterNew == nil {
		i.IterNew = noopIncrementer{}
	}
	return &i
}
