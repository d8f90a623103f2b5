package datastructures

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

var (
	// ErrInvalidPosition is returned by position-indexed operations when the
	// position is outside [0, Size()-1]. Every position is invalid on an empty list.
	ErrInvalidPosition = errors.New("position is invalid or out of bounds")
	// ErrEmptyList is returned by accessors that need at least one element.
	ErrEmptyList = errors.New("list is empty")
	// ErrNodeLinked is returned when linking a node that already belongs to a list.
	ErrNodeLinked = errors.New("node is already linked into a list")
)

// DoublyLinkedList is a generic doubly linked list. The cached size is never
// written directly by the mutating operations: each of them triggers an
// EventIncrease, EventDecrease or EventReset and the handlers registered on
// construction keep the count in sync.
//
// A DoublyLinkedList is not safe for concurrent use; callers sharing one
// across goroutines must provide their own locking. The zero value is an
// empty list ready to use. A list must not be copied after first use.
type DoublyLinkedList[T any] struct {
	head   *Node[T]
	tail   *Node[T]
	length int
	events *EventListener[Event]
}

// New creates a list holding values in the given order.
func New[T any](values ...T) *DoublyLinkedList[T] {
	l := &DoublyLinkedList[T]{}
	l.lazyInit()
	for _, v := range values {
		l.InsertTail(v)
	}
	return l
}

// lazyInit registers the size handlers the first time the list is touched.
func (l *DoublyLinkedList[T]) lazyInit() {
	if l.events != nil {
		return
	}
	l.events = NewEventListener[Event]()
	l.events.Add(EventIncrease, func() { l.length++ })
	l.events.Add(EventDecrease, func() { l.length-- })
	l.events.Add(EventReset, func() { l.length = 0 })
}

func (l *DoublyLinkedList[T]) trigger(kind Event) {
	l.lazyInit()
	l.events.Trigger(kind)
}

// OnEvent registers an extra handler for kind. It runs after the built-in
// size handler, so Size() already reflects the mutation.
func (l *DoublyLinkedList[T]) OnEvent(kind Event, handler func()) {
	l.lazyInit()
	l.events.Add(kind, handler)
}

// IsEmpty reports whether the list has no nodes.
func (l *DoublyLinkedList[T]) IsEmpty() bool {
	return l.head == nil
}

// Size returns the cached number of nodes.
func (l *DoublyLinkedList[T]) Size() int {
	return l.length
}

// Len is an alias for Size.
func (l *DoublyLinkedList[T]) Len() int {
	return l.Size()
}

// OnlyElement reports whether the list holds exactly one node.
func (l *DoublyLinkedList[T]) OnlyElement() bool {
	return l.head != nil && l.head == l.tail
}

// validPosition rejects every position on an empty list.
func (l *DoublyLinkedList[T]) validPosition(position int) bool {
	return l.length > 0 && position >= 0 && position <= l.length-1
}

// nodeAt walks from the head. position must be valid.
func (l *DoublyLinkedList[T]) nodeAt(position int) *Node[T] {
	switch position {
	case 0:
		return l.head
	case l.length - 1:
		return l.tail
	}
	n := l.head
	for i := 0; i < position; i++ {
		n = n.next
	}
	return n
}

// InsertHead adds a value before the current head.
func (l *DoublyLinkedList[T]) InsertHead(value T) {
	_ = l.InsertHeadNode(NewNode[T](value, nil, nil))
}

// InsertHeadNode links a detached node before the current head. A nil node
// is ignored; a node still linked into this or another list is rejected.
func (l *DoublyLinkedList[T]) InsertHeadNode(n *Node[T]) error {
	if n == nil {
		return nil
	}
	if n.list != nil {
		return fmt.Errorf("InsertHeadNode: %w", ErrNodeLinked)
	}
	n.list = l
	n.prev = nil
	if l.head == nil {
		n.next = nil
		l.head = n
		l.tail = n
	} else {
		n.next = l.head
		l.head.prev = n
		l.head = n
	}
	l.trigger(EventIncrease)
	return nil
}

// InsertTail adds a value after the current tail.
func (l *DoublyLinkedList[T]) InsertTail(value T) {
	_ = l.InsertTailNode(NewNode[T](value, nil, nil))
}

// InsertTailNode links a detached node after the current tail. A nil node
// is ignored; a node still linked into this or another list is rejected.
func (l *DoublyLinkedList[T]) InsertTailNode(n *Node[T]) error {
	if n == nil {
		return nil
	}
	if n.list != nil {
		return fmt.Errorf("InsertTailNode: %w", ErrNodeLinked)
	}
	n.list = l
	n.next = nil
	if l.tail == nil {
		n.prev = nil
		l.head = n
		l.tail = n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.trigger(EventIncrease)
	return nil
}

// Insert appends value, becoming the head if the list is empty.
func (l *DoublyLinkedList[T]) Insert(value T) {
	if !l.IsEmpty() {
		l.InsertTail(value)
	} else {
		l.InsertHead(value)
	}
}

// InsertAt places value so that it ends up at position, shifting the node
// previously there (and everything after it) one step towards the tail.
// position must be in [0, Size()-1]; use InsertTail to append.
func (l *DoublyLinkedList[T]) InsertAt(position int, value T) error {
	if !l.validPosition(position) {
		return fmt.Errorf("InsertAt: position %d: %w", position, ErrInvalidPosition)
	}
	if position == 0 {
		l.InsertHead(value)
		return nil
	}

	next := l.nodeAt(position)
	prev := next.prev
	n := NewNode(value, prev, next)
	n.list = l
	prev.next = n
	next.prev = n

	l.trigger(EventIncrease)
	return nil
}

// RemoveHead unlinks the head node. It does nothing on an empty list.
func (l *DoublyLinkedList[T]) RemoveHead() {
	l.PopHead()
}

// RemoveTail unlinks the tail node. It does nothing on an empty list.
func (l *DoublyLinkedList[T]) RemoveTail() {
	l.PopTail()
}

// PopHead removes and returns the value at the head.
func (l *DoublyLinkedList[T]) PopHead() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, ErrEmptyList
	}
	n := l.head
	if l.OnlyElement() {
		l.head = nil
		l.tail = nil
	} else {
		l.head = n.next
		l.head.prev = nil
	}
	n.next = nil
	n.list = nil

	l.trigger(EventDecrease)
	return n.Value, nil
}

// PopTail removes and returns the value at the tail.
func (l *DoublyLinkedList[T]) PopTail() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, ErrEmptyList
	}
	if l.OnlyElement() {
		return l.PopHead()
	}
	n := l.tail
	l.tail = n.prev
	l.tail.next = nil
	n.prev = nil
	n.list = nil

	l.trigger(EventDecrease)
	return n.Value, nil
}

// RemoveAt unlinks the node at position.
func (l *DoublyLinkedList[T]) RemoveAt(position int) error {
	if !l.validPosition(position) {
		return fmt.Errorf("RemoveAt: position %d: %w", position, ErrInvalidPosition)
	}
	switch position {
	case 0:
		l.RemoveHead()
		return nil
	case l.length - 1:
		l.RemoveTail()
		return nil
	}

	n := l.nodeAt(position)
	prev, next := n.prev, n.next
	n.prev = nil
	n.next = nil
	n.list = nil
	prev.next = next
	next.prev = prev

	l.trigger(EventDecrease)
	return nil
}

// GetNode returns the node at position.
func (l *DoublyLinkedList[T]) GetNode(position int) (*Node[T], error) {
	if !l.validPosition(position) {
		return nil, fmt.Errorf("GetNode: position %d: %w", position, ErrInvalidPosition)
	}
	return l.nodeAt(position), nil
}

// Change overwrites the value at position in place.
func (l *DoublyLinkedList[T]) Change(position int, value T) error {
	if !l.validPosition(position) {
		return fmt.Errorf("Change: position %d: %w", position, ErrInvalidPosition)
	}
	l.nodeAt(position).Value = value
	return nil
}

// GetHead returns the value at the head.
func (l *DoublyLinkedList[T]) GetHead() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, fmt.Errorf("GetHead: %w", ErrEmptyList)
	}
	return l.head.Value, nil
}

// GetTail returns the value at the tail.
func (l *DoublyLinkedList[T]) GetTail() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, fmt.Errorf("GetTail: %w", ErrEmptyList)
	}
	return l.tail.Value, nil
}

// Clear drops every node. It does nothing on an empty list.
func (l *DoublyLinkedList[T]) Clear() {
	if l.IsEmpty() {
		return
	}
	for n := l.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n.list = nil
		n = next
	}
	l.head = nil
	l.tail = nil

	l.trigger(EventReset)
}

// Reverse swaps prev and next on every node, then swaps head and tail.
// Nodes are not reallocated, so node references stay valid.
func (l *DoublyLinkedList[T]) Reverse() {
	if l.IsEmpty() || l.OnlyElement() {
		return
	}
	for n := l.head; n != nil; n = n.prev {
		n.prev, n.next = n.next, n.prev
	}
	l.head, l.tail = l.tail, l.head
}

// IndexFunc returns the position of the first value satisfying match, or -1.
func (l *DoublyLinkedList[T]) IndexFunc(match func(T) bool) int {
	i := 0
	for n := l.head; n != nil; n = n.next {
		if match(n.Value) {
			return i
		}
		i++
	}
	return -1
}

// Count returns how many values satisfy match.
func (l *DoublyLinkedList[T]) Count(match func(T) bool) int {
	count := 0
	for n := l.head; n != nil; n = n.next {
		if match(n.Value) {
			count++
		}
	}
	return count
}

// All iterates over the values from head to tail.
func (l *DoublyLinkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Backward iterates over the values from tail to head.
func (l *DoublyLinkedList[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.tail; n != nil; n = n.prev {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Values returns a snapshot of the values from head to tail.
func (l *DoublyLinkedList[T]) Values() []T {
	values := make([]T, 0, l.length)
	for v := range l.All() {
		values = append(values, v)
	}
	return values
}

// String formats the list as [v0 v1 ...].
func (l *DoublyLinkedList[T]) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for n := l.head; n != nil; n = n.next {
		if n != l.head {
			b.WriteByte(' ')
		}
		fmt.Fprint(&b, n.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// Print writes every value on its own line, head first.
func (l *DoublyLinkedList[T]) Print(w io.Writer) error {
	for v := range l.All() {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}
