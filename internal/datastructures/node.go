package datastructures

// Node is a single storage cell of a DoublyLinkedList. The links are owned by
// the list; a Node only reaches its neighbours for traversal.
type Node[T any] struct {
	Value T
	prev  *Node[T]
	next  *Node[T]

	// list is the list the node is linked into, nil while detached.
	list *DoublyLinkedList[T]
}

// NewNode allocates a node holding value with the given (possibly nil) neighbours.
func NewNode[T any](value T, prev, next *Node[T]) *Node[T] {
	return &Node[T]{Value: value, prev: prev, next: next}
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Prev returns the preceding node, or nil at the head.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}
