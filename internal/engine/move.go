package engine

import "go.uber.org/zap"

// BackStep is the step count of a back-step (backdo).
const BackStep = -1

// Outcome reports what a single Apply did. A rejected request has Applied
// false and changes nothing.
type Outcome struct {
	Applied  bool
	Captured bool
	Finished bool
	From     NodeID
	To       NodeID
	Path     []NodeID
	Moved    []*Piece
	Victims  []*Piece
}

func noop() Outcome {
	return Outcome{From: NoNode, To: NoNode}
}

// Engine applies resolved move requests to one board. It is not safe for
// concurrent use; callers serialize moves.
type Engine struct {
	board    *Board
	resolver *PathResolver
	log      *zap.SugaredLogger
}

func NewEngine(b *Board, log *zap.SugaredLogger) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Engine{
		board:    b,
		resolver: NewPathResolver(b),
		log:      log,
	}
}

func (e *Engine) Board() *Board { return e.board }

// Apply moves piece by steps: a positive count moves forward, BackStep undoes
// one recorded step. Same-owner pieces sharing the node move with it.
func (e *Engine) Apply(p *Piece, steps int) Outcome {
	if p == nil || p.finished {
		return noop()
	}
	switch {
	case steps > 0:
		return e.forward(p, steps)
	case steps == BackStep:
		return e.backward(p)
	default:
		return noop()
	}
}

func (e *Engine) forward(p *Piece, steps int) Outcome {
	start := e.board.start
	first := p.AtHome()
	src := p.position
	if first {
		src = start
	}

	if !first && src == start && p.hasLeftStart {
		group := e.board.nodes[start].takeOwnedBy(p.owner)
		e.finishGroup(group)
		return Outcome{Applied: true, Finished: true, From: src, To: NoNode, Moved: group}
	}

	path := e.resolver.Forward(src, steps, !first && p.stoppedAtJunc)
	if len(path) != steps {
		return noop()
	}
	dest := path[len(path)-1]

	var group []*Piece
	if first {
		group = []*Piece{p}
	} else {
		group = e.board.nodes[src].takeOwnedBy(p.owner)
	}

	if !first && passesStart(path, start) {
		e.finishGroup(group)
		return Outcome{Applied: true, Finished: true, From: src, To: NoNode, Path: path, Moved: group}
	}

	victims := e.capture(p.owner, dest)

	stops := e.board.StopsAtShortcut(dest)
	for _, m := range group {
		m.history.record(src, path)
		m.position = dest
		m.stoppedAtJunc = stops
		if dest != start {
			m.hasLeftStart = true
		}
		e.board.nodes[dest].place(m)
	}

	e.log.Debugw("pieces moved",
		"owner", p.owner.name,
		"stack", len(group),
		"from", src,
		"to", dest,
		"path", path,
		"captured", len(victims),
	)
	return Outcome{
		Applied:  true,
		Captured: len(victims) > 0,
		From:     src,
		To:       dest,
		Path:     path,
		Moved:    group,
		Victims:  victims,
	}
}

func (e *Engine) backward(p *Piece) Outcome {
	if !p.OnBoard() {
		return noop()
	}
	start := e.board.start
	src := p.position

	if src == start && p.hasLeftStart && p.history.Len() == 1 {
		dest, ok := p.history.Retained()
		if !ok || dest == start {
			return noop()
		}
		group := e.board.nodes[start].takeOwnedBy(p.owner)
		victims := e.capture(p.owner, dest)
		for _, m := range group {
			m.history.Reset(start, dest)
			e.settle(m, dest)
		}
		e.log.Debugw("back-step off start", "owner", p.owner.name, "stack", len(group), "to", dest)
		return Outcome{
			Applied:  true,
			Captured: len(victims) > 0,
			From:     src,
			To:       dest,
			Path:     []NodeID{dest},
			Moved:    group,
			Victims:  victims,
		}
	}

	dest, ok := p.history.Below()
	if !ok {
		return noop()
	}
	group := e.board.nodes[src].takeOwnedBy(p.owner)
	victims := e.capture(p.owner, dest)
	for _, m := range group {
		m.history.stepBack(src, dest)
		e.settle(m, dest)
	}
	e.log.Debugw("back-step", "owner", p.owner.name, "stack", len(group), "from", src, "to", dest)
	return Outcome{
		Applied:  true,
		Captured: len(victims) > 0,
		From:     src,
		To:       dest,
		Path:     []NodeID{dest},
		Moved:    group,
		Victims:  victims,
	}
}

func (e *Engine) settle(m *Piece, dest NodeID) {
	m.position = dest
	m.stoppedAtJunc = e.board.StopsAtShortcut(dest)
	e.board.nodes[dest].place(m)
}

// capture sends every piece at dest not owned by owner back home.
func (e *Engine) capture(owner *Player, dest NodeID) []*Piece {
	victims := e.board.nodes[dest].evictOthers(owner)
	for _, v := range victims {
		v.sendHome()
	}
	if len(victims) > 0 {
		e.log.Debugw("pieces captured", "by", owner.name, "at", dest, "count", len(victims))
	}
	return victims
}

func (e *Engine) finishGroup(group []*Piece) {
	for _, m := range group {
		m.finish()
	}
	if len(group) > 0 {
		e.log.Debugw("pieces finished", "owner", group[0].owner.name, "count", len(group))
	}
}

// passesStart reports whether the path crosses start before its last node.
func passesStart(path []NodeID, start NodeID) bool {
	for _, id := range path[:len(path)-1] {
		if id == start {
			return true
		}
	}
	return false
}
