package engine

// PathResolver computes the nodes a forward move visits.
type PathResolver struct {
	board *Board
	rules Rules
}

func NewPathResolver(b *Board) *PathResolver {
	return &PathResolver{board: b, rules: b.Rules()}
}

// Forward returns the steps nodes visited when leaving src, destination last.
// deferred is set when the piece stopped on an intersection last move, which
// sends the first step down the shortcut. The path is never truncated at the
// start node; lap detection belongs to the caller.
func (r *PathResolver) Forward(src NodeID, steps int, deferred bool) []NodeID {
	if steps <= 0 || r.board.Node(src) == nil {
		return nil
	}

	path := make([]NodeID, 0, steps)
	cur := src
	rerouteAt := NoNode
	for i := 0; i < steps; i++ {
		n := r.board.nodes[cur]
		if at, ok := r.rules.armsReroute(cur, n.forward); ok {
			rerouteAt = at
		}

		switch {
		case i == 0 && r.departsByShortcut(n, deferred):
			cur = n.shortcut
		case cur == rerouteAt && n.HasShortcut():
			cur = n.shortcut
			rerouteAt = NoNode
		default:
			cur = n.forward
		}
		path = append(path, cur)
	}
	return path
}

func (r *PathResolver) departsByShortcut(n *Node, deferred bool) bool {
	if !n.HasShortcut() || n.id == r.rules.FinishAdjacent {
		return false
	}
	return deferred || r.rules.departsByShortcut(n.id)
}
