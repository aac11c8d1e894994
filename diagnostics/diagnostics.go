// Package diagnostics defines the sink that the parsing pipeline reports
// data-quality events to.
//
// The pipeline never fails a whole load because of a single bad record or
// amount; it drops the offending piece and tells the sink. The sink decides
// what to do with the event: collect it for a load report, log it, or
// discard it. Injecting the sink keeps the parser testable without
// intercepting global output.
package diagnostics

import "sync"

// Kind classifies a data-quality event.
type Kind int

const (
	// KindAmountRejected means one monetary amount failed validation and was
	// dropped; the transaction itself survived.
	KindAmountRejected Kind = iota

	// KindRecordSkipped means a whole record was dropped and contributed no
	// transaction.
	KindRecordSkipped

	// KindUnknownCurrency means a currency code outside the known set was
	// encountered.
	KindUnknownCurrency
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindAmountRejected:
		return "amount rejected"
	case KindRecordSkipped:
		return "record skipped"
	case KindUnknownCurrency:
		return "unknown currency"
	default:
		return "unknown"
	}
}

// Event is one recorded data-quality observation.
type Event struct {
	Kind     Kind
	RecordID string
	Reason   string
	Value    string // the offending text, if any
}

// Sink receives data-quality events from the pipeline.
type Sink interface {
	// AmountRejected reports a monetary amount that failed validation.
	AmountRejected(recordID, reason, offending string)

	// RecordSkipped reports a record that produced no transaction.
	RecordSkipped(recordID, reason string)

	// UnknownCurrency reports a currency code outside the known set.
	UnknownCurrency(recordID, code string)
}

// Nop is a sink that discards all events.
type Nop struct{}

func (Nop) AmountRejected(recordID, reason, offending string) {}
func (Nop) RecordSkipped(recordID, reason string)             {}
func (Nop) UnknownCurrency(recordID, code string)             {}

// Collector is a sink that records events in memory, for load reports and
// tests. Safe for concurrent use.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) AmountRejected(recordID, reason, offending string) {
	c.record(Event{Kind: KindAmountRejected, RecordID: recordID, Reason: reason, Value: offending})
}

func (c *Collector) RecordSkipped(recordID, reason string) {
	c.record(Event{Kind: KindRecordSkipped, RecordID: recordID, Reason: reason})
}

func (c *Collector) UnknownCurrency(recordID, code string) {
	c.record(Event{Kind: KindUnknownCurrency, RecordID: recordID, Value: code})
}

func (c *Collector) record(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of all recorded events in order.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Count returns the number of recorded events of the given kind.
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Multi fans events out to several sinks, typically a collector plus a
// logger.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) AmountRejected(recordID, reason, offending string) {
	for _, s := range m {
		s.AmountRejected(recordID, reason, offending)
	}
}

func (m multiSink) RecordSkipped(recordID, reason string) {
	for _, s := range m {
		s.RecordSkipped(recordID, reason)
	}
}

func (m multiSink) UnknownCurrency(recordID, code string) {
	for _, s := range m {
		s.UnknownCurrency(recordID, code)
	}
}
