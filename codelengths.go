package huffz78

import "container/heap"

// arrayHeap is a min-heap view over the first sz elements of a shared
// backing array a. It adapts the teacher's container/heap-based htHeap
// (a priority queue of *htNode) from a tree of node pointers to the
// in-place index array the "Managing Gigabytes" code-length algorithm
// runs over: heap.Pop's swap-to-end-then-shrink behavior is exactly the
// "pop the minimum, leaving it in the vacated slot" step the algorithm
// requires, so no separate tree structure is ever allocated.
type arrayHeap struct {
	a  []int
	sz int
}

func (h *arrayHeap) Len() int           { return h.sz }
func (h *arrayHeap) Less(i, j int) bool { return h.a[h.a[i]] < h.a[h.a[j]] }
func (h *arrayHeap) Swap(i, j int)      { h.a[i], h.a[j] = h.a[j], h.a[i] }

// Push/Pop never touch the length of a: the backing array is fixed at
// 2*sigma for the whole construction. Push is called after the caller
// has already written the new heap element into a[h.sz]; it only needs
// to grow the active window. Pop shrinks the window and returns the
// value left behind at the vacated slot.
func (h *arrayHeap) Push(x any) { h.sz++ }
func (h *arrayHeap) Pop() any {
	h.sz--
	return h.a[h.sz]
}

// assignCodeLengths computes the code length of every symbol in an
// effective alphabet, given counts in canonical-symbol (ascending)
// order. Implements the in-place two-pass heap procedure ported
// directly from gen_codelengths.
//
// Requires len(counts) >= 2; callers special-case sigma <= 1 themselves
// -- the sole symbol of a sigma=1 alphabet is emitted uncompressed,
// never Huffman-coded.
func assignCodeLengths(counts []uint64) []byte {
	sigma := len(counts)
	if sigma < 2 {
		panic("huffz78: assignCodeLengths requires an alphabet of size >= 2")
	}

	// A[sigma..2*sigma) holds leaf weights; A[0..sigma) holds pointers
	// into the leaves, forming the initial heap.
	a := make([]int, 2*sigma)
	for i := 0; i < sigma; i++ {
		a[sigma+i] = int(counts[i])
		a[i] = sigma + i
	}

	h := &arrayHeap{a: a, sz: sigma}
	heap.Init(h)

	n := sigma - 1
	for n > 0 {
		m1 := heap.Pop(h).(int)
		n--
		m2 := heap.Pop(h).(int)

		a[n+1] = a[m1] + a[m2] // combined weight of the new internal node
		a[n] = n + 1           // heap slot now points at that node
		a[m1] = n + 1          // parent back-pointers
		a[m2] = n + 1

		heap.Push(h, 0)
	}

	// Depths by one bottom-up pass: each i's parent index is < i.
	a[1] = 0
	for i := 2; i < 2*sigma; i++ {
		a[i] = a[a[i]] + 1
	}

	lengths := make([]byte, sigma)
	for i := 0; i < sigma; i++ {
		if a[sigma+i] > 64 {
			panic("huffz78: code length exceeds 64 bits")
		}
		lengths[i] = byte(a[sigma+i])
	}
	return lengths
}
