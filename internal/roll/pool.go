package roll

import "sort"

// Pool holds previously rolled face values queued per face count.
// Values leave the pool at most once, oldest first.
type Pool struct {
	queues map[int][]int
}

// NewPool creates an empty pool
func NewPool() *Pool {
	return &Pool{queues: make(map[int][]int)}
}

// BuildPool queues every result of every dice term of r, active or not,
// in term then outcome order
func BuildPool(r *Roll) *Pool {
	pool := NewPool()
	for _, d := range Flatten(r) {
		for _, result := range d.Results {
			pool.Add(d.Faces, result.Value)
		}
	}
	return pool
}

// Add enqueues a value for faces
func (p *Pool) Add(faces, value int) {
	p.queues[faces] = append(p.queues[faces], value)
}

// Take dequeues the oldest value for faces
func (p *Pool) Take(faces int) (int, bool) {
	queue := p.queues[faces]
	if len(queue) == 0 {
		return 0, false
	}
	value := queue[0]
	p.queues[faces] = queue[1:]
	return value, true
}

// Remaining returns a copy of the values still queued for faces
func (p *Pool) Remaining(faces int) []int {
	return append([]int(nil), p.queues[faces]...)
}

// Faces returns the face counts that still hold values, ascending
func (p *Pool) Faces() []int {
	faces := make([]int, 0, len(p.queues))
	for f, queue := range p.queues {
		if len(queue) > 0 {
			faces = append(faces, f)
		}
	}
	sort.Ints(faces)
	return faces
}

// Len counts every queued value
func (p *Pool) Len() int {
	n := 0
	for _, queue := range p.queues {
		n += len(queue)
	}
	return n
}
