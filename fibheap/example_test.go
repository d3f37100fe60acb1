package fibheap_test

import (
	"fmt"

	"github.com/katalvlaran/meshpatch/fibheap"
)

// ExampleHeap_DecreaseKey shows the decrease-key pattern used by shortest-path runs.
func ExampleHeap_DecreaseKey() {
	h := fibheap.New()
	a := h.Insert(5, 100)
	h.Insert(3, 200)
	h.Insert(4, 300)

	// Found a shorter route to payload 100.
	if err := h.DecreaseKey(a, 1); err != nil {
		fmt.Println("error:", err)
		return
	}

	for !h.Empty() {
		k, p, _ := h.ExtractMin()
		fmt.Printf("%g:%d ", k, p)
	}
	fmt.Println()
	// Output: 1:100 3:200 4:300
}
