package ir

// Builder emits statements into a graph one block at a time. It owns the
// block numbering and tracks the block that receives new statements.
type Builder struct {
	graph        *Graph
	current      *Vertex
	blockCounter int
}

// NewBuilder creates a builder over a fresh graph
func NewBuilder() *Builder {
	return &Builder{graph: NewGraph()}
}

// Graph returns the graph under construction
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Current returns the block receiving statements, or nil before the first block
func (b *Builder) Current() *Vertex {
	return b.current
}

func (b *Builder) createBlock() *Vertex {
	v := b.graph.AddVertex()
	v.Number = b.blockCounter
	b.blockCounter++
	return v
}

// NewBlock creates a block, links the current block to it and makes it current
func (b *Builder) NewBlock() *Vertex {
	v := b.createBlock()
	if b.current != nil {
		b.graph.Connect(b.current, v)
	}
	b.current = v
	return v
}

// NewDisconnectedBlock creates a block without the implicit edge and makes it current
func (b *Builder) NewDisconnectedBlock() *Vertex {
	v := b.createBlock()
	b.current = v
	return v
}

// SetCurrent redirects subsequent statements to v
func (b *Builder) SetCurrent(v *Vertex) {
	b.current = v
}

// AppendStatement adds s to the current block. Empty statements are dropped.
func (b *Builder) AppendStatement(s *Stmt) {
	if s.Kind == KindEmpty {
		return
	}
	if b.current == nil {
		b.NewBlock()
	}
	b.current.Append(s)
}

// Connect adds an explicit edge, used for join points and loop back-edges
func (b *Builder) Connect(from, to *Vertex) {
	b.graph.Connect(from, to)
}
