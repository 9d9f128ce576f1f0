package loop

import "container/heap"

// timerHeap implements container/heap.Interface for *timer,
// sorted by fire time, then by scheduling order (min-heap).
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

func heapPush(h *timerHeap, t *timer) {
	heap.Push(h, t)
}

// heapPop removes and returns the earliest timer. Panics if the heap is empty.
func heapPop(h *timerHeap) *timer {
	return heap.Pop(h).(*timer)
}

// heapRemove removes t from the heap. Returns false if t is not in it.
func heapRemove(h *timerHeap, t *timer) bool {
	if t.index < 0 || t.index >= h.Len() || (*h)[t.index] != t {
		return false
	}
	heap.Remove(h, t.index)
	return true
}

// heapPeek returns the earliest timer without removing it, or nil.
func heapPeek(h *timerHeap) *timer {
	if h.Len() == 0 {
		return nil
	}
	return (*h)[0]
}
