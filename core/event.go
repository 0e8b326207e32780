package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Event represents a single log event produced at the emit boundary.
// Events are transient: they are built per call, handed to the router,
// and must not be retained after dispatch completes.
type Event struct {
	Time     time.Time
	Category string // empty means uncategorized
	PID      int64
	TID      int64
	Level    WireLevel
	Function string
	File     string
	Line     int
	Message  string
}

// eventPool is a pool of Event objects to reduce allocations
var eventPool = sync.Pool{
	New: func() interface{} {
		return &Event{}
	},
}

// GetEvent retrieves an Event from the pool with its timestamp set
func GetEvent() *Event {
	e := eventPool.Get().(*Event)
	e.Time = Now()
	return e
}

// PutEvent returns an Event to the pool
func PutEvent(e *Event) {
	if e == nil {
		return
	}
	*e = Event{}
	eventPool.Put(e)
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File     string
	Line     int
	Function string
	Defined  bool
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:     filepath.Base(file),
		Line:     line,
		Function: funcName,
		Defined:  true,
	}
}
