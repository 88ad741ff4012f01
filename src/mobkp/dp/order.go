package dp

import (
	"gopkg.in/dnaeon/go-priorityqueue.v1"

	"mobkp_instances/src/mobkp"
)

// efficiency is the summed objective value per unit of weight.
func efficiency(it mobkp.Item) float64 {
	var sum int64
	for _, v := range it.Values {
		sum += v
	}
	if it.Weight <= 0 {
		return float64(sum)
	}
	return float64(sum) / float64(it.Weight)
}

// Order returns the item indices of p by decreasing efficiency.
func Order(p *mobkp.Problem) []int {
	pq := priorityqueue.New[int, float64](priorityqueue.MaxHeap)
	for i, it := range p.Items {
		pq.Put(i, efficiency(it))
	}
	order := make([]int, 0, len(p.Items))
	for pq.Len() > 0 {
		item := pq.Get()
		order = append(order, item.Value)
	}
	return order
}

func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
