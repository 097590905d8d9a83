package provisioning

import (
	"fmt"
	"maps"
	"sync"
)

// RecordingObserver keeps every message and event in memory. Tests and
// callers that render their own output use it instead of the console.
type RecordingObserver struct {
	mu       *sync.Mutex
	fields   map[string]string
	messages *[]string
	events   *[]Event
}

// NewRecordingObserver creates an empty recorder.
func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{
		mu:       &sync.Mutex{},
		fields:   map[string]string{},
		messages: &[]string{},
		events:   &[]Event{},
	}
}

// Printf implements Logger.
func (r *RecordingObserver) Printf(format string, v ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.messages = append(*r.messages, fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (r *RecordingObserver) Event(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fields := maps.Clone(r.fields)
	maps.Copy(fields, event.Fields)
	event.Fields = fields
	*r.events = append(*r.events, event)
}

// WithFields implements Observer. The child shares the parent's buffers.
func (r *RecordingObserver) WithFields(fields map[string]string) Observer {
	merged := maps.Clone(r.fields)
	maps.Copy(merged, fields)
	return &RecordingObserver{mu: r.mu, fields: merged, messages: r.messages, events: r.events}
}

// Messages returns a copy of the recorded Printf output.
func (r *RecordingObserver) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), *r.messages...)
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), *r.events...)
}

// EventsOfType returns the recorded events with the given type.
func (r *RecordingObserver) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
