package fontcache

// lruNode is an element of the recency list. It carries its key so the
// oldest entry can be dropped from the map without a search.
type lruNode struct {
	key        Key
	prev, next *lruNode
}

// lruList orders keys by last use: head is the newest, tail the oldest.
// Callers synchronize.
type lruList struct {
	head, tail *lruNode
	len        int
}

func (l *lruList) pushFront(key Key) *lruNode {
	n := &lruNode{key: key, next: l.head}
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
	return n
}

func (l *lruList) moveToFront(n *lruNode) {
	if n == l.head {
		return
	}
	l.unlink(n)
	n.prev, n.next = nil, l.head
	if l.head != nil {
		l.head.prev = n
	} else {
		l.tail = n
	}
	l.head = n
	l.len++
}

// popBack removes the oldest node.
func (l *lruList) popBack() (Key, bool) {
	n := l.tail
	if n == nil {
		return Key{}, false
	}
	l.unlink(n)
	return n.key, true
}

func (l *lruList) unlink(n *lruNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	l.len--
}
