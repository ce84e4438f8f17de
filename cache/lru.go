package cache

// lruNode is an element of lruList.
type lruNode[K any] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList is a doubly linked list ordered from most to least recently used.
// It is not safe for concurrent use; callers hold the shard lock.
type lruList[K any] struct {
	// root is a sentinel: root.next is the front, root.prev the oldest.
	root lruNode[K]
	len  int
}

func newLRUList[K any]() *lruList[K] {
	l := &lruList[K]{}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of nodes.
func (l *lruList[K]) Len() int { return l.len }

// PushFront inserts key as the most recently used entry.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	n := &lruNode[K]{key: key}
	l.insertFront(n)
	l.len++
	return n
}

func (l *lruList[K]) insertFront(n *lruNode[K]) {
	n.prev = &l.root
	n.next = l.root.next
	l.root.next.prev = n
	l.root.next = n
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

// MoveToFront marks n as most recently used.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || n.prev == nil || l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertFront(n)
}

// Remove deletes n from the list.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.prev == nil {
		return
	}
	l.unlink(n)
	l.len--
}

// RemoveOldest deletes and returns the least recently used key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.len == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.Remove(n)
	return n.key, true
}

// Clear removes all nodes.
func (l *lruList[K]) Clear() {
	l.root.next = &l.root
	l.root.prev = &l.root
	l.len = 0
}
