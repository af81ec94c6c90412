package mines

// celltodo is a FIFO of cell indices threaded through a next-pointer slice,
// so a board-sized flood fill allocates once and never recurses.
type celltodo struct {
	next       []int
	queued     []bool
	head, tail int
}

func newCellTodo(size int) *celltodo {
	return &celltodo{
		next:   make([]int, size),
		queued: make([]bool, size),
		head:   -1,
		tail:   -1,
	}
}

// add enqueues i unless it has been queued before during this fill.
func (std *celltodo) add(i int) {
	if std.queued[i] {
		return
	}
	std.queued[i] = true
	if std.tail >= 0 {
		std.next[std.tail] = i
	} else {
		std.head = i
	}
	std.tail = i
	std.next[i] = -1
}

func (std *celltodo) pop() (int, bool) {
	if std.head < 0 {
		return 0, false
	}
	i := std.head
	std.head = std.next[i]
	if std.head < 0 {
		std.tail = -1
	}
	return i, true
}
