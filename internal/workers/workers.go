package workers

type Workers struct {
	workers []Worker
}

// NewWorkers groups the given workers into a single aggregate.
func NewWorkers(all ...Worker) *Workers {
	return &Workers{workers: all}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
