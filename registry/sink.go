package registry

import (
	"github.com/golang/glog"
)

// Event describes one record appended during a parse.
type Event struct {
	// Section is the top-level section the record belongs to.
	Section string
	// RecordKind names the kind of record, e.g. "structure".
	RecordKind string
	Name       string
	// Nested is set for records owned by another record, such as
	// members, parameters and requirement entries.
	Nested bool
}

// Sink receives diagnostic events from a parse. Sinks are called
// synchronously from the parsing goroutine.
type Sink interface {
	Record(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Record(ev Event) { f(ev) }

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Record(Event) {}

// GlogSink logs top-level records at verbosity 1 and nested records at
// verbosity 2.
type GlogSink struct{}

func (GlogSink) Record(ev Event) {
	if ev.Nested {
		glog.V(2).Infof("%s:   %s %s", ev.Section, ev.RecordKind, ev.Name)
		return
	}
	glog.V(1).Infof("%s: %s %s", ev.Section, ev.RecordKind, ev.Name)
}
