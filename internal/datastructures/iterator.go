package datastructures

// Cursor is a movable position inside a DoublyLinkedList. The end of the
// sequence, in either direction, is the cursor holding no node.
//
// A cursor borrows the list's chain. Removing or clearing the node it refers
// to invalidates it: stepping from an invalidated cursor lands on End, and
// reading its value returns whatever the detached node last held. Inserting
// elsewhere in the list does not invalidate it.
type Cursor[T any] struct {
	current *Node[T]
}

// Begin returns a cursor on the head, or End for an empty list.
func (l *DoublyLinkedList[T]) Begin() Cursor[T] {
	return Cursor[T]{current: l.head}
}

// Last returns a cursor on the tail, or End for an empty list.
func (l *DoublyLinkedList[T]) Last() Cursor[T] {
	return Cursor[T]{current: l.tail}
}

// End returns the past-the-end sentinel.
func (l *DoublyLinkedList[T]) End() Cursor[T] {
	return Cursor[T]{}
}

// AtEnd reports whether the cursor is past either end of the list.
func (c Cursor[T]) AtEnd() bool {
	return c.current == nil
}

// Next moves the cursor one step towards the tail. It stays at End once there.
func (c *Cursor[T]) Next() {
	if c.current != nil {
		c.current = c.current.next
	}
}

// Prev moves the cursor one step towards the head. It stays at End once there.
func (c *Cursor[T]) Prev() {
	if c.current != nil {
		c.current = c.current.prev
	}
}

// Value returns the value under the cursor. It panics at End.
func (c Cursor[T]) Value() T {
	if c.current == nil {
		panic("datastructures: Value called on cursor at end")
	}
	return c.current.Value
}

// Set overwrites the value under the cursor. It panics at End.
func (c Cursor[T]) Set(value T) {
	if c.current == nil {
		panic("datastructures: Set called on cursor at end")
	}
	c.current.Value = value
}

// Node returns the node under the cursor, or nil at End.
func (c Cursor[T]) Node() *Node[T] {
	return c.current
}

// Equal reports whether both cursors refer to the same node.
func (c Cursor[T]) Equal(other Cursor[T]) bool {
	return c.current == other.current
}
