package core

import (
	"errors"
	"sort"
	"sync"

	"github.com/vskvj3/dlist/internal/datastructures"
)

// IntList is the list type stored by the database.
type IntList = datastructures.DoublyLinkedList[int]

// EventObserver is told about every structural mutation of every list. It
// runs while the database lock is held and must not call back into it.
type EventObserver func(key string, kind datastructures.Event, size int)

// Database holds named lists. The lists themselves are not safe for
// concurrent use, so every access goes through the database mutex.
type Database struct {
	mu       sync.Mutex
	lists    map[string]*IntList
	observer EventObserver
}

// Create a new database instance
func NewDatabase() *Database {
	return &Database{
		lists: make(map[string]*IntList),
	}
}

// Observe installs an observer for lists created after this call
func (db *Database) Observe(observer EventObserver) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.observer = observer
}

// newList builds a list and wires the observer into its events
func (db *Database) newList(key string, values ...int) *IntList {
	l := datastructures.New[int]()
	if db.observer != nil {
		observer := db.observer
		for _, kind := range []datastructures.Event{
			datastructures.EventIncrease,
			datastructures.EventDecrease,
			datastructures.EventReset,
		} {
			l.OnEvent(kind, func() { observer(key, kind, l.Size()) })
		}
	}
	for _, v := range values {
		l.InsertTail(v)
	}
	return l
}

// Do runs fn against the list stored under key, creating an empty one first
// if needed
func (db *Database) Do(key string, fn func(l *IntList) error) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	l, exists := db.lists[key]
	if !exists {
		l = db.newList(key)
		db.lists[key] = l
	}
	return fn(l)
}

// Set replaces the list stored under key with one holding values
func (db *Database) Set(key string, values []int) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	db.lists[key] = db.newList(key, values...)
	return nil
}

// Values returns a snapshot of the list stored under key
func (db *Database) Values(key string) ([]int, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	l, exists := db.lists[key]
	if !exists {
		return nil, errors.New("key not found")
	}
	return l.Values(), nil
}

// Delete drops the list stored under key
func (db *Database) Delete(key string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.lists, key)
}

// Keys returns the stored keys in sorted order
func (db *Database) Keys() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	keys := make([]string, 0, len(db.lists))
	for key := range db.lists {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
