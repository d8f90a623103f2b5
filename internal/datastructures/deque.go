package datastructures

// Deque represents a double-ended queue backed by a DoublyLinkedList.
// Unlike a ring buffer it has no capacity and never reports full.
type Deque[T any] struct {
	list *DoublyLinkedList[T]
}

// NewDeque creates an empty Deque.
func NewDeque[T any]() *Deque[T] {
	return &Deque[T]{list: New[T]()}
}

// PushFront adds an element to the front of the deque.
func (d *Deque[T]) PushFront(value T) {
	d.list.InsertHead(value)
}

// PushBack adds an element to the back of the deque.
func (d *Deque[T]) PushBack(value T) {
	d.list.InsertTail(value)
}

// PopFront removes an element from the front of the deque.
func (d *Deque[T]) PopFront() (T, error) {
	return d.list.PopHead()
}

// PopBack removes an element from the back of the deque.
func (d *Deque[T]) PopBack() (T, error) {
	return d.list.PopTail()
}

// Front returns the element at the front of the deque.
func (d *Deque[T]) Front() (T, error) {
	return d.list.GetHead()
}

// Back returns the element at the back of the deque.
func (d *Deque[T]) Back() (T, error) {
	return d.list.GetTail()
}

// Size returns the number of elements in the deque.
func (d *Deque[T]) Size() int {
	return d.list.Size()
}

// Empty checks if the deque is empty.
func (d *Deque[T]) Empty() bool {
	return d.list.IsEmpty()
}
