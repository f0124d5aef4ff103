package tempo

// NodeByID returns the attached node with the given ID, or nil.
func (s *Session) NodeByID(id uint32) *Node {
	for _, n := range s.nodes {
		if n.ID == id && !n.disposed {
			return n
		}
	}
	return nil
}

// NodeByName returns the first attached node with the given name, or nil.
func (s *Session) NodeByName(name string) *Node {
	for _, n := range s.nodes {
		if n.Name == name && !n.disposed {
			return n
		}
	}
	return nil
}

// NodeByEntity returns the first attached node carrying the given ECS entity
// ID, or nil. Entity ID 0 never matches.
func (s *Session) NodeByEntity(entityID uint32) *Node {
	if entityID == 0 {
		return nil
	}
	for _, n := range s.nodes {
		if n.EntityID == entityID && !n.disposed {
			return n
		}
	}
	return nil
}

// InjectTap queues a synthetic tap at (x, y) on the node with the given ID.
// It is delivered during the next Tick. Returns false if no attached node
// has that ID.
func (s *Session) InjectTap(nodeID uint32, x, y float64) bool {
	return s.inject(nodeID, Gesture{Kind: GestureTap, X: x, Y: y})
}

// InjectDoubleTap queues two taps at (x, y). Both are delivered during the
// same Tick.
func (s *Session) InjectDoubleTap(nodeID uint32, x, y float64) bool {
	return s.InjectTap(nodeID, x, y) && s.InjectTap(nodeID, x, y)
}

// InjectSwipe queues a synthetic swipe from (fromX, fromY) to (toX, toY).
func (s *Session) InjectSwipe(nodeID uint32, fromX, fromY, toX, toY float64) bool {
	return s.inject(nodeID, Gesture{
		Kind: GestureSwipe,
		X:    fromX, Y: fromY,
		DX: toX - fromX, DY: toY - fromY,
	})
}

func (s *Session) inject(nodeID uint32, g Gesture) bool {
	n := s.NodeByID(nodeID)
	if n == nil {
		return false
	}
	g.EntityID = n.EntityID
	n.PushGesture(g)
	return true
}

// DeliverGesture routes a gesture to the node carrying g.EntityID.
// Returns false if no attached node matches.
func (s *Session) DeliverGesture(g Gesture) bool {
	n := s.NodeByEntity(g.EntityID)
	if n == nil {
		return false
	}
	n.PushGesture(g)
	return true
}
