package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// Job is a unit of work tagged with its submission sequence number.
type Job[T any] struct {
	Seq     int
	Payload T
}

// Result carries the sequence number of the job that produced it, so callers
// can restore submission order after collection.
type Result[G any] struct {
	Seq   int
	Value G
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
	nextSeq    int
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- Result[G]{Seq: job.Seq, Value: jobFunc(job.Payload)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker has exited, then closes the results channel.
// Close must have been called.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

// AddJob enqueues a job and returns its sequence number. Not safe for
// concurrent use by several producers.
func (wp *WorkerPool[T, G]) AddJob(job T) int {
	seq := wp.nextSeq
	wp.nextSeq++
	wp.jobQueue <- Job[T]{Seq: seq, Payload: job}
	return seq
}

func (wp *WorkerPool[T, G]) CollectResults() chan Result[G] {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Run processes jobs with numWorkers goroutines and returns the results in the
// order the jobs were given.
func Run[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(jobFunc)

	go func() {
		for _, job := range jobs {
			wp.AddJob(job)
		}
		wp.Close()
	}()

	go wp.Wait()

	out := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		out[res.Seq] = res.Value
	}
	return out
}
