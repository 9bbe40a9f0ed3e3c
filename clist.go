package bspmesh

// Clist is a cyclic list of vertex ids. Indices wrap around in both
// directions.
type Clist struct {
	ids []VertexID
}

func NewClist(ids []VertexID) *Clist {
	return &Clist{ids: append([]VertexID(nil), ids...)}
}

func (c *Clist) Len() int {
	return len(c.ids)
}

func (c *Clist) At(i int) VertexID {
	n := len(c.ids)
	return c.ids[((i%n)+n)%n]
}

// RemoveAt drops the id at cyclic index i.
func (c *Clist) RemoveAt(i int) {
	n := len(c.ids)
	i = ((i % n) + n) % n
	c.ids = append(c.ids[:i], c.ids[i+1:]...)
}
