package validator

import "sync"

// CallbackFunc performs the actual validation for Callback. It may record
// its own messages on msgs.
type CallbackFunc func(value any, msgs *Messages) bool

// CallbackOption configures Callback.
type CallbackOption func(*Callback)

// WithoutResultCache makes Callback invoke its function on every call.
func WithoutResultCache() CallbackOption {
	return func(c *Callback) {
		c.cacheResult = false
	}
}

// Callback delegates validation to a function.
//
// By default the first result is cached and returned by every later call
// without invoking the function again, regardless of the value passed.
// Concurrent first calls invoke the function once. The function may call
// Reset, but must not call Validate on the same cached Callback: that call
// waits for the function itself to return.
//
//	dedup := validator.NewCallback(func(value any, msgs *validator.Messages) bool {
//	    if alreadyExists(value) {
//	        msgs.Add("Record already exists in database")
//	        return false
//	    }
//	    return true
//	})
type Callback struct {
	fn          CallbackFunc
	cacheResult bool

	// runMu serializes cached invocations; mu guards cached only.
	runMu  sync.Mutex
	mu     sync.Mutex
	cached *Result
}

// NewCallback panics if fn is nil.
func NewCallback(fn CallbackFunc, opts ...CallbackOption) *Callback {
	if fn == nil {
		panic("validator: nil callback function")
	}
	c := &Callback{fn: fn, cacheResult: true}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Validate implements Validator.
func (c *Callback) Validate(value any) Result {
	if !c.cacheResult {
		return c.run(value)
	}

	if res, ok := c.load(); ok {
		return res
	}

	c.runMu.Lock()
	defer c.runMu.Unlock()
	if res, ok := c.load(); ok {
		return res
	}

	res := c.run(value)
	c.mu.Lock()
	c.cached = &res
	c.mu.Unlock()
	return res
}

func (c *Callback) load() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return Result{}, false
	}
	return *c.cached, true
}

func (c *Callback) run(value any) Result {
	var m Messages
	valid := c.fn(value, &m)
	return m.Result(valid)
}

// Reset drops a cached result so the next call invokes the function again.
func (c *Callback) Reset() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
