package kernel

// Node is one deferred callback site. A Node is created once by its owner and
// re-linked into a Queue any number of times; it is never freed.
type Node struct {
	_        [0]func() // not comparable
	enqueued bool
	next     *Node
	fn       func()
}

// NewNode returns a node that runs fn when drained.
func NewNode(fn func()) *Node {
	return &Node{fn: fn}
}

// Queue moves work from interrupt context to the main loop.
//
// Enqueue may be called from interrupt handlers and from any goroutine.
// Drain and Wait belong to the single main loop. The zero value is ready to use.
type Queue struct {
	cs   critical
	head *Node
}

// Enqueue links n at the head of the queue unless it is already queued.
// It never blocks for longer than the pointer update and never allocates.
func (q *Queue) Enqueue(n *Node) {
	if n == nil {
		return
	}
	s := q.cs.enter()
	if !n.enqueued {
		n.enqueued = true
		n.next = q.head
		q.head = n
		q.cs.notify()
	}
	q.cs.exit(s)
}

// Drain runs queued callbacks until the queue is empty and returns how many ran.
//
// The most recently enqueued node runs first. A node's flag is cleared before
// its callback runs, so a callback may re-enqueue its own node; it then runs
// again within the same Drain.
func (q *Queue) Drain() int {
	ran := 0
	for {
		s := q.cs.enter()
		n := q.head
		if n != nil {
			q.head = n.next
			n.next = nil
			n.enqueued = false
		}
		q.cs.exit(s)

		if n == nil {
			return ran
		}
		if n.fn != nil {
			n.fn()
		}
		ran++
	}
}

// Pending reports whether any node is queued.
func (q *Queue) Pending() bool {
	s := q.cs.enter()
	pending := q.head != nil
	q.cs.exit(s)
	return pending
}
