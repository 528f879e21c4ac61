// Package queue provides a minimal in-process job queue. Each queue is a
// named buffered channel drained by a single consumer goroutine, so jobs
// are handed to the consumer at most once and in enqueue order. There is
// no acknowledgment or retry: a job is gone once the consumer picked it up.
package queue

import (
	"errors"
	"sync"
	"time"
)

const (
	// MessagesQueue is the name of the message dispatch queue
	MessagesQueue = "message"
	// JobSendMessages labels one "send messages for this project" job
	JobSendMessages = "send-messages"
)

// Job carries one unit of asynchronous work
type Job struct {
	Name       string
	Payload    interface{}
	EnqueuedAt time.Time
}

// Handler processes a single job
type Handler func(job Job)

// Queue is a named job queue with a single consumer
type Queue struct {
	name string
	jobs chan Job

	mu       sync.Mutex
	closed   bool
	consumed bool
	done     chan struct{}
}

// Messages is the queue carrying message dispatch jobs, initialized in main
var Messages *Queue

// New creates a queue with the given name and buffer size
func New(name string, size int) *Queue {
	return &Queue{
		name: name,
		jobs: make(chan Job, size),
		done: make(chan struct{}),
	}
}

// Name returns the queue name
func (q *Queue) Name() string {
	return q.name
}

// Enqueue adds a job to the queue and returns immediately. It fails when
// the queue is closed or its buffer is full. The lock is held across the
// buffered send so Close cannot close the channel between the check and
// the send.
func (q *Queue) Enqueue(jobName string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errors.New("queue " + q.name + " is closed")
	}

	job := Job{Name: jobName, Payload: payload, EnqueuedAt: time.Now()}
	select {
	case q.jobs <- job:
		return nil
	default:
		return errors.New("queue " + q.name + " is full")
	}
}

// Consume starts the single consumer goroutine. Jobs are processed one at
// a time in enqueue order until the queue is closed and drained. Consume
// may only be called once per queue.
func (q *Queue) Consume(handler Handler) {
	q.mu.Lock()
	if q.consumed {
		q.mu.Unlock()
		panic("queue " + q.name + " already has a consumer")
	}
	q.consumed = true
	q.mu.Unlock()

	go func() {
		defer close(q.done)
		for job := range q.jobs {
			handler(job)
		}
	}()
}

// Close stops accepting jobs and waits until the consumer drained the
// remaining ones
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	consumed := q.consumed
	close(q.jobs)
	q.mu.Unlock()

	if consumed {
		<-q.done
	}
}
