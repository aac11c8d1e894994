package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// TimingCollector records timers in a tree and reports them as a nested
// view:
//
//	load transcription.xml: 12ms
//	├─ decode: 4ms
//	└─ parse (312 records): 8ms
type TimingCollector struct {
	mu      sync.Mutex
	root    *node
	current *node
}

type node struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *node
	children []*node
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation. The first timer becomes the root; later
// ones nest under whichever timer is currently open.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := &node{name: name, start: time.Now()}
	if c.root == nil {
		c.root = n
	} else {
		n.parent = c.current
		c.current.children = append(c.current.children, n)
	}
	c.current = n

	return &timer{collector: c, node: n}
}

// Report writes the timing tree.
func (c *TimingCollector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "%s: %s\n", c.root.name, formatDuration(c.root.duration()))
	for i, child := range c.root.children {
		writeNode(w, child, "", i == len(c.root.children)-1)
	}
}

func writeNode(w io.Writer, n *node, prefix string, last bool) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	_, _ = fmt.Fprintf(w, "%s%s%s: %s\n", prefix, branch, n.name, formatDuration(n.duration()))
	for i, child := range n.children {
		writeNode(w, child, prefix+extension, i == len(n.children)-1)
	}
}

func (n *node) duration() time.Duration {
	if n.end.IsZero() {
		return time.Since(n.start)
	}
	return n.end.Sub(n.start)
}

// formatDuration rounds to a readable precision.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond * 10).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond * 100).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}

type timer struct {
	collector *TimingCollector
	node      *node
}

// End stops the timer and reopens its parent for siblings.
func (t *timer) End() {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	t.node.end = time.Now()
	if t.node.parent != nil {
		t.collector.current = t.node.parent
	}
}

// Child nests a new timer under this one.
func (t *timer) Child(name string) Timer {
	t.collector.mu.Lock()
	defer t.collector.mu.Unlock()

	n := &node{name: name, start: time.Now(), parent: t.node}
	t.node.children = append(t.node.children, n)

	return &timer{collector: t.collector, node: n}
}
