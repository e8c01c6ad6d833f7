package platform

type Event interface{}

type Expose struct{}
type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type Resize struct {
	Width, Height int
}
type DestroyNotify struct{}
type UnexpectedEvent struct{}
type TimeoutEvent struct{}

// Queue buffers events produced by native callbacks until they are polled.
type Queue struct {
	events []Event
}

func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Pop returns the oldest event, or false when the queue is empty.
func (q *Queue) Pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return e, true
}

func (q *Queue) Len() int { return len(q.events) }
