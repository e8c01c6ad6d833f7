package gfx

// DefaultEventsPerFrame caps how many queued events one frame handles before
// rendering.
const DefaultEventsPerFrame = 64

// drainEvents waits up to timeoutMs for a first event, then takes whatever is
// already queued without waiting, stopping after limit events. The rest stay
// queued for the next frame so input bursts cannot starve rendering.
func drainEvents(poll func(timeoutMs int) (Event, bool), handle func(Event), timeoutMs, limit int) int {
	if limit <= 0 {
		limit = DefaultEventsPerFrame
	}
	count := 0
	for count < limit {
		event, ok := poll(timeoutMs)
		if !ok {
			break
		}
		handle(event)
		count++
		timeoutMs = 0
	}
	return count
}
