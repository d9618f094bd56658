package swgl

import "time"

// query accumulates a samples count or an elapsed time in nanoseconds.
type query struct {
	target QueryTarget
	value  uint64
	begin  time.Time
}

// BeginQuery starts query id for target. Its previous result is reset.
func (c *Context) BeginQuery(target QueryTarget, id uint32) {
	if target != SamplesPassed && target != TimeElapsed {
		c.warn("BeginQuery", "invalid target", "target", target)
		return
	}
	if id == 0 {
		c.warn("BeginQuery", "null query")
		return
	}
	if c.activeQueries[target] != 0 {
		c.warn("BeginQuery", "query already active", "target", target)
		return
	}
	q := c.queries.Get(id)
	q.target, q.value = target, 0
	if target == TimeElapsed {
		q.begin = time.Now()
	}
	c.activeQueries[target] = id
}

// EndQuery ends the active query for target.
func (c *Context) EndQuery(target QueryTarget) {
	if target != SamplesPassed && target != TimeElapsed {
		c.warn("EndQuery", "invalid target", "target", target)
		return
	}
	id := c.activeQueries[target]
	if id == 0 {
		c.warn("EndQuery", "no active query", "target", target)
		return
	}
	c.activeQueries[target] = 0
	q, ok := c.queries.Find(id)
	if !ok {
		return
	}
	if target == TimeElapsed {
		q.value = uint64(time.Since(q.begin).Nanoseconds()) // #nosec G115 -- monotonic, non-negative
	}
}

// GetQueryResult returns the result of query id: samples written for
// SamplesPassed, nanoseconds for TimeElapsed. Draws are synchronous, so the
// result is always available once the query has ended.
func (c *Context) GetQueryResult(id uint32) uint64 {
	q, ok := c.queries.Find(id)
	if !ok || id == 0 {
		c.warn("GetQueryResult", "unknown query", "id", id)
		return 0
	}
	return q.value
}
