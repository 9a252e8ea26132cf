package pqueue

// binomialNode is a node in a binomial tree: child points at the
// highest-degree child (children chain in decreasing degree order),
// sibling chains to the next root or next child of the same parent,
// parent points back up. Grounded on
// PriorityQueueBinomial::BinomialNode in priority_queue_binomial.hpp.
type binomialNode[K, P any] struct {
	key      K
	priority P
	id       uint64
	degree   int
	parent   *binomialNode[K, P]
	child    *binomialNode[K, P]
	sibling  *binomialNode[K, P]
}

func (n *binomialNode[K, P]) swapContent(other *binomialNode[K, P]) {
	n.key, other.key = other.key, n.key
	n.priority, other.priority = other.priority, n.priority
}

// BinomialQueue is a mergeable priority queue implemented as a forest of
// binomial trees whose roots are kept in strictly increasing order of
// degree. Grounded on PriorityQueueBinomial in
// priority_queue_binomial.hpp/priority_queue_binomial_impl.hpp.
type BinomialQueue[K, P any] struct {
	head   *binomialNode[K, P]
	nodes  map[uint64]*binomialNode[K, P]
	nextID uint64
	size   int
	less   Comparer[P]
	wit    *witness
}

// NewBinomial constructs an empty binomial heap ordered by less.
func NewBinomial[K, P any](less Comparer[P]) *BinomialQueue[K, P] {
	return &BinomialQueue[K, P]{
		nodes: make(map[uint64]*binomialNode[K, P]),
		less:  less,
		wit:   &witness{},
	}
}

// BinomialHandle is a stable reference to an element inserted into a
// BinomialQueue. Identity travels with the (key, priority) payload rather
// than with a tree slot: UpdatePriority's bubble-up swaps node contents
// and the identity->node mapping together, so a handle keeps pointing at
// the same logical element even after its payload has moved to a
// different node in the tree. Grounded on
// PriorityQueueBinomial::PriorityQueueBinomialPtr.
type BinomialHandle[K, P any] struct {
	id    uint64
	wit   *witness
	owner *BinomialQueue[K, P]
}

// IsValid reports whether the handle still refers to a live element.
func (h *BinomialHandle[K, P]) IsValid() bool {
	if h == nil || h.wit.dead {
		return false
	}
	_, ok := h.owner.nodes[h.id]
	return ok
}

// Node returns the handle's current key and priority, or ErrInvalidHandle
// if the handle is no longer valid.
func (h *BinomialHandle[K, P]) Node() (key K, priority P, err error) {
	if !h.IsValid() {
		return key, priority, ErrInvalidHandle
	}
	n := h.owner.nodes[h.id]
	return n.key, n.priority, nil
}

// Len reports the number of elements currently in the queue.
func (q *BinomialQueue[K, P]) Len() int { return q.size }

// Empty reports whether the queue holds no elements.
func (q *BinomialQueue[K, P]) Empty() bool { return q.size == 0 }

// Insert adds (key, priority) to the heap and returns a handle to it.
func (q *BinomialQueue[K, P]) Insert(key K, priority P) *BinomialHandle[K, P] {
	id := q.nextID
	q.nextID++

	n := &binomialNode[K, P]{key: key, priority: priority, id: id}
	q.nodes[id] = n
	q.unionWith(n)
	q.size++

	return &BinomialHandle[K, P]{id: id, wit: q.wit, owner: q}
}

// Top returns the key and priority of the extreme root across every tree
// in the forest, without removing it.
func (q *BinomialQueue[K, P]) Top() (key K, priority P, err error) {
	best, err := q.topNode()
	if err != nil {
		return key, priority, err
	}
	return best.key, best.priority, nil
}

func (q *BinomialQueue[K, P]) topNode() (*binomialNode[K, P], error) {
	if q.head == nil {
		return nil, ErrEmptyQueue
	}
	best := q.head
	for x := q.head.sibling; x != nil; x = x.sibling {
		if q.less(best.priority, x.priority) {
			best = x
		}
	}
	return best, nil
}

// ExtractTop removes and returns the extreme root. Its children become a
// standalone forest of their own (reversed, with parent pointers
// cleared) and are reunioned into the remaining roots.
func (q *BinomialQueue[K, P]) ExtractTop() (key K, priority P, err error) {
	best, err := q.topNode()
	if err != nil {
		return key, priority, err
	}

	var prev *binomialNode[K, P]
	for x := q.head; x != best; x = x.sibling {
		prev = x
	}
	if prev == nil {
		q.head = best.sibling
	} else {
		prev.sibling = best.sibling
	}

	var orphans *binomialNode[K, P]
	for c := best.child; c != nil; {
		next := c.sibling
		c.sibling = orphans
		c.parent = nil
		orphans = c
		c = next
	}
	if orphans != nil {
		q.unionWith(orphans)
	}

	delete(q.nodes, best.id)
	q.size--
	return best.key, best.priority, nil
}

// UpdatePriority writes newPriority into the handle's element and bubbles
// it toward the top by swapping node contents (not tree links) with each
// ancestor that now ranks worse, per the binomial heap's design: only
// moves toward the top are permitted. A move away from the top fails with
// ErrMonotonicityViolation and leaves the queue untouched. O(log N).
func (q *BinomialQueue[K, P]) UpdatePriority(h *BinomialHandle[K, P], newPriority P) error {
	if h == nil || h.owner != q || !h.IsValid() {
		return ErrInvalidHandle
	}
	node := q.nodes[h.id]
	if q.less(newPriority, node.priority) {
		return ErrMonotonicityViolation
	}
	node.priority = newPriority

	y := node
	p := y.parent
	for p != nil && q.less(p.priority, y.priority) {
		yID, pID := y.id, p.id
		y.swapContent(p)
		q.nodes[yID], q.nodes[pID] = q.nodes[pID], q.nodes[yID]
		y.id, p.id = pID, yID
		y = p
		p = y.parent
	}
	return nil
}

// Clear empties the queue and permanently invalidates every handle issued
// so far.
func (q *BinomialQueue[K, P]) Clear() {
	q.head = nil
	q.nodes = make(map[uint64]*binomialNode[K, P])
	q.size = 0
	q.wit.dead = true
	q.wit = &witness{}
}

func linkTree[K, P any](child, parent *binomialNode[K, P]) {
	child.parent = parent
	child.sibling = parent.child
	parent.child = child
	parent.degree++
}

// mergeRootLists produces a single sibling list sorted by non-decreasing
// degree from two such lists, without coalescing equal-degree roots.
func mergeRootLists[K, P any](first, second *binomialNode[K, P]) *binomialNode[K, P] {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}

	var head *binomialNode[K, P]
	if first.degree < second.degree {
		head, first = first, first.sibling
	} else {
		head, second = second, second.sibling
	}

	tail := head
	for first != nil && second != nil {
		if first.degree < second.degree {
			tail.sibling, tail, first = first, first, first.sibling
		} else {
			tail.sibling, tail, second = second, second, second.sibling
		}
	}
	if first != nil {
		tail.sibling = first
	} else {
		tail.sibling = second
	}
	return head
}

// unionWith merges other into the queue's own root list, then walks the
// merged list coalescing adjacent equal-degree roots, exactly as the
// reference implementation's binomialHeapUnionWithThis does: a
// three-root lookahead (x, nextX, nextX.sibling) decides whether to link
// now or advance, and the comparer decides which of two equal-degree
// roots stays on top.
func (q *BinomialQueue[K, P]) unionWith(other *binomialNode[K, P]) {
	head := mergeRootLists(q.head, other)
	if head == nil {
		q.head = nil
		return
	}

	var prevX *binomialNode[K, P]
	x := head
	nextX := x.sibling
	for nextX != nil {
		sameDegreeAhead := nextX.sibling != nil && nextX.sibling.degree == x.degree
		if x.degree != nextX.degree || sameDegreeAhead {
			prevX = x
			x = nextX
		} else if q.less(nextX.priority, x.priority) {
			x.sibling = nextX.sibling
			linkTree(nextX, x)
		} else {
			if prevX == nil {
				head = nextX
			} else {
				prevX.sibling = nextX
			}
			linkTree(x, nextX)
			x = nextX
		}
		nextX = x.sibling
	}
	q.head = head
}
