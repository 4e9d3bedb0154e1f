package evolution

// IDGenerator hands out agent identities. IDs are unique for the lifetime of
// the engine so records from different generations never collide.
type IDGenerator struct {
	nextID uint32
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{nextID: 1}
}

// NextID returns the next unique agent ID.
func (g *IDGenerator) NextID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}
