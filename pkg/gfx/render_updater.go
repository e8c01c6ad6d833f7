package gfx

import "time"

// renderUpdater calls render at most once per refresh period.
type renderUpdater struct {
	rendererRefreshRate time.Duration
	nextRenderTime      time.Time
	render              func() error
}

func newRenderUpdater(
	rendererRefreshRate time.Duration,
	render func() error,
) *renderUpdater {
	if rendererRefreshRate <= 0 {
		rendererRefreshRate = time.Second / 60
	}
	return &renderUpdater{
		rendererRefreshRate: rendererRefreshRate,
		nextRenderTime:      time.Now().Add(rendererRefreshRate),
		render:              render,
	}
}

// timeout returns how long event polling may block before the next frame is
// due, capped at limit.
func (r *renderUpdater) timeout(limit time.Duration) int {
	wait := time.Until(r.nextRenderTime)
	if wait < 0 {
		wait = 0
	}
	if wait > limit {
		wait = limit
	}
	timeoutMs := int(wait / time.Millisecond)
	if wait > 0 && timeoutMs == 0 {
		timeoutMs = 1
	}
	return timeoutMs
}

func (r *renderUpdater) run() error {
	now := time.Now()
	if now.Before(r.nextRenderTime) {
		return nil
	}
	r.nextRenderTime = now.Add(r.rendererRefreshRate)
	return r.render()
}
