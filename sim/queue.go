// Implements the WaitingQueue, which holds all passengers not yet on the grid.
// Passengers are enqueued before (or during) a run and leave through an Entrance.

package sim

import (
	"fmt"
	"strings"
)

// WaitingQueue represents a FIFO queue of passengers waiting to board.
// Enqueue order is ingress order.
type WaitingQueue struct {
	queue []PassengerID
}

// Enqueue adds a passenger to the back of the queue.
func (wq *WaitingQueue) Enqueue(id PassengerID) {
	wq.queue = append(wq.queue, id)
}

func (wq *WaitingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of passengers in the queue.
func (wq *WaitingQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the passenger at the front of the queue without removing it.
func (wq *WaitingQueue) Peek() (PassengerID, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	return wq.queue[0], true
}

// Items returns a copy of the queue contents in ingress order.
func (wq *WaitingQueue) Items() []PassengerID {
	out := make([]PassengerID, len(wq.queue))
	copy(out, wq.queue)
	return out
}

// Dequeue removes the passenger at the front of the queue.
func (wq *WaitingQueue) Dequeue() (PassengerID, bool) {
	if len(wq.queue) == 0 {
		return 0, false
	}
	id := wq.queue[0]
	wq.queue = wq.queue[1:]
	return id, true
}
