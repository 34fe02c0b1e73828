package diorama

import "github.com/mokiat/lacking/util/async"

// WorkerCapacity bounds the render loop queue. Schedule blocks once it is
// full, so it must stay above the number of loads in flight.
const WorkerCapacity = 64

// Worker runs scheduled functions on the goroutine that drains it.
type Worker interface {
	Schedule(fn func())
}

// NewWorker returns the queue drained by Application.Frame.
func NewWorker() *async.Worker {
	return async.NewWorker(WorkerCapacity)
}

// drain runs at most WorkerCapacity pending functions without blocking.
func drain(worker *async.Worker) {
	worker.ProcessCount(WorkerCapacity)
}
