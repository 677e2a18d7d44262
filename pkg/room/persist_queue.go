package room

import "sync"

const syncStateCall = "SyncState"

// persistBacklogWarning is the backlog at which the dealer warns that the store is behind
const persistBacklogWarning = 256

type persistJob struct {
	name string
	fn   func()
}

// persistQueue hands store calls to the persist goroutine in order
// push never blocks. A SyncState queued directly behind another SyncState replaces it, since
// only the latest public view matters.
type persistQueue struct {
	lock   sync.Mutex
	jobs   []persistJob
	closed bool
	wake   chan bool
}

func newPersistQueue() *persistQueue {
	return &persistQueue{
		jobs: make([]persistJob, 0),
		wake: make(chan bool, 1),
	}
}

// push queues the job and returns the number of jobs waiting
func (q *persistQueue) push(name string, fn func()) int {
	q.lock.Lock()
	job := persistJob{name: name, fn: fn}
	if n := len(q.jobs); n > 0 && name == syncStateCall && q.jobs[n-1].name == syncStateCall {
		q.jobs[n-1] = job
	} else {
		q.jobs = append(q.jobs, job)
	}
	waiting := len(q.jobs)
	q.lock.Unlock()

	q.signal()
	return waiting
}

// close lets pop return false once every queued job was taken
func (q *persistQueue) close() {
	q.lock.Lock()
	q.closed = true
	q.lock.Unlock()

	q.signal()
}

// pop blocks until a job is queued
// It returns false when the queue is closed and empty.
func (q *persistQueue) pop() (persistJob, bool) {
	for {
		q.lock.Lock()
		if len(q.jobs) > 0 {
			job := q.jobs[0]
			q.jobs[0] = persistJob{}
			q.jobs = q.jobs[1:]
			q.lock.Unlock()
			return job, true
		}

		closed := q.closed
		q.lock.Unlock()

		if closed {
			return persistJob{}, false
		}

		<-q.wake
	}
}

func (q *persistQueue) len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return len(q.jobs)
}

func (q *persistQueue) signal() {
	select {
	case q.wake <- true:
	default:
	}
}
