package trace

import "time"

// Kind tells begin, end and instant events apart.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = [...]string{"unknown", "begin", "end", "point"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Scope is the granularity of an event. Smaller values are coarser, which
// is what Level.ShouldEmit compares against.
type Scope uint8

const (
	ScopeRequest Scope = iota + 1 // one input end to end
	ScopeStage                    // one orchestrator stage
	ScopeHost                     // one host file-system call
)

var scopeNames = [...]string{"unknown", "request", "stage", "host"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return scopeNames[0]
}

// Event is one trace record. Begin and end events of a span share SpanID;
// points get an ID of their own.
type Event struct {
	Time      time.Time
	Seq       uint64 // global, monotonic
	Kind      Kind
	Scope     Scope
	SpanID    uint64
	ParentID  uint64 // 0 at the root
	RequestID string // distinguishes concurrent requests
	Name      string
	Detail    string
	Extra     map[string]string
}
