package planner

import (
	"math"

	"github.com/jfrascon/gerona/pkg/util"
)

// Entry is one element held by a priorityQueue, returned by Insert so the
// caller can later DecreaseKey it without a separate lookup.
type Entry[T any] struct {
	degree   int
	isMarked bool

	next   *Entry[T]
	prev   *Entry[T]
	child  *Entry[T]
	parent *Entry[T]

	elem     T
	priority float64
}

func newEntry[T any](elem T, priority float64) *Entry[T] {
	e := &Entry[T]{elem: elem, priority: priority}
	e.next = e
	e.prev = e
	return e
}

// Elem returns the value stored at the entry.
func (e *Entry[T]) Elem() T {
	return e.elem
}

// Priority returns the entry's current priority (cost).
func (e *Entry[T]) Priority() float64 {
	return e.priority
}

// priorityQueue is a Fibonacci heap used as the search's open set. Unlike a
// std::set ordered purely by cost, a heap entry is identified by pointer,
// not by its priority, so two nodes with exactly equal cost both stay in
// the queue instead of one silently displacing the other at insert time.
type priorityQueue[T any] struct {
	min  *Entry[T]
	size int
}

func newPriorityQueue[T any]() *priorityQueue[T] {
	return &priorityQueue[T]{}
}

func (q *priorityQueue[T]) Min() *Entry[T] {
	return q.min
}

func (q *priorityQueue[T]) MinPriority() float64 {
	if q.min == nil {
		return math.MaxFloat64
	}
	return q.min.priority
}

func (q *priorityQueue[T]) Size() int {
	return q.size
}

func (q *priorityQueue[T]) Empty() bool {
	return q.size == 0
}

// Insert adds elem to the queue at priority and returns its entry.
func (q *priorityQueue[T]) Insert(elem T, priority float64) *Entry[T] {
	e := newEntry(elem, priority)
	q.min = mergeRootLists(q.min, e)
	q.size++
	return e
}

func mergeRootLists[T any](one, two *Entry[T]) *Entry[T] {
	switch {
	case one == nil && two == nil:
		return nil
	case two == nil:
		return one
	case one == nil:
		return two
	}

	oneNext := one.next
	one.next = two.next
	one.next.prev = one
	two.next = oneNext
	two.next.prev = two

	if one.priority < two.priority {
		return one
	}
	return two
}

// DecreaseKey lowers entry's priority. newPriority must not exceed the
// entry's current priority.
func (q *priorityQueue[T]) DecreaseKey(entry *Entry[T], newPriority float64) {
	util.AssertPanic(newPriority <= entry.priority, "new priority must be less or equal than old priority")
	q.decrease(entry, newPriority)
}

func (q *priorityQueue[T]) decrease(entry *Entry[T], priority float64) {
	entry.priority = priority

	if entry.parent != nil && entry.priority <= entry.parent.priority {
		q.cut(entry)
	}
	if entry.priority < q.min.priority {
		q.min = entry
	}
}

func (q *priorityQueue[T]) cut(entry *Entry[T]) {
	entry.isMarked = false

	if entry.parent == nil {
		return
	}

	entry.next.prev = entry.prev
	entry.prev.next = entry.next

	if entry.parent.child == entry {
		if entry.next != entry {
			entry.parent.child = entry.next
		} else {
			entry.parent.child = nil
		}
	}
	entry.parent.degree--

	entry.prev = entry
	entry.next = entry
	q.min = mergeRootLists(q.min, entry)

	if entry.parent.isMarked {
		q.cut(entry.parent)
	} else {
		entry.parent.isMarked = true
	}
	entry.parent = nil
}

// ExtractMin removes and returns the entry with the lowest priority.
func (q *priorityQueue[T]) ExtractMin() *Entry[T] {
	util.AssertPanic(q.min != nil, "heap is empty")

	q.size--
	minEntry := q.min

	if q.min.next == q.min {
		q.min = nil
	} else {
		q.min.prev.next = q.min.next
		q.min.next.prev = q.min.prev
		q.min = q.min.next
	}

	if minEntry.child != nil {
		start := minEntry.child
		for curr := minEntry.child; ; {
			curr.parent = nil
			curr = curr.next
			if curr == start {
				break
			}
		}
	}

	q.min = mergeRootLists(q.min, minEntry.child)
	if q.min == nil {
		return minEntry
	}

	q.consolidate()
	return minEntry
}

func (q *priorityQueue[T]) consolidate() {
	degreeTable := make([]*Entry[T], 0)

	roots := make([]*Entry[T], 0)
	for curr := q.min; len(roots) == 0 || roots[0] != curr; curr = curr.next {
		roots = append(roots, curr)
	}

	for _, curr := range roots {
		for {
			for curr.degree >= len(degreeTable) {
				degreeTable = append(degreeTable, nil)
			}
			if degreeTable[curr.degree] == nil {
				degreeTable[curr.degree] = curr
				break
			}

			other := degreeTable[curr.degree]
			degreeTable[curr.degree] = nil

			var lo, hi *Entry[T]
			if other.priority < curr.priority {
				lo, hi = other, curr
			} else {
				lo, hi = curr, other
			}

			hi.next.prev = hi.prev
			hi.prev.next = hi.next
			hi.next = hi
			hi.prev = hi
			lo.child = mergeRootLists(lo.child, hi)
			hi.parent = lo
			hi.isMarked = false
			lo.degree++

			curr = lo
		}

		if curr.priority <= q.min.priority {
			q.min = curr
		}
	}
}
