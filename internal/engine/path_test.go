package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(v ...int) []NodeID {
	out := make([]NodeID, len(v))
	for i, x := range v {
		out[i] = NodeID(x)
	}
	return out
}

func TestPathResolver_Forward(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		src      NodeID
		steps    int
		deferred bool
		want     []NodeID
	}{
		{"outer ring", Square, 0, 5, false, ids(1, 2, 3, 4, 5)},
		{"passes corner without stopping", Square, 3, 4, false, ids(4, 5, 6, 7)},
		{"deferred shortcut at corner", Square, 5, 3, true, ids(20, 21, 28)},
		{"corner without deferred", Square, 5, 2, false, ids(6, 7)},
		{"center continues forward", Square, 5, 5, true, ids(20, 21, 28, 24, 25)},
		{"center exit when stopped", Square, 28, 3, true, ids(26, 27, 0)},
		{"node ten always departs by shortcut", Square, 10, 2, false, ids(22, 23)},
		{"reroute through center", Square, 10, 5, true, ids(22, 23, 28, 26, 27)},
		{"reroute from inner arm", Square, 23, 3, false, ids(28, 26, 27)},
		{"finish adjacent ignores deferred", Square, 15, 2, true, ids(16, 17)},
		{"wraps past start", Square, 18, 3, false, ids(19, 0, 1)},
		{"pentagon corner fifteen", Pentagon, 15, 3, true, ids(29, 30, 35)},
		{"pentagon forward arm joins outer", Pentagon, 32, 2, false, ids(20, 21)},
		{"pentagon center forward", Pentagon, 10, 5, true, ids(27, 28, 35, 31, 32)},
		{"pentagon ten without deferred", Pentagon, 10, 2, false, ids(11, 12)},
		{"hexagon corner twenty", Hexagon, 20, 3, true, ids(36, 37, 42)},
		{"hexagon exit arm", Hexagon, 42, 4, true, ids(40, 41, 0, 1)},
		{"hexagon forward arm", Hexagon, 39, 2, false, ids(25, 26)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewPathResolver(MustBuild(tt.kind))
			assert.Equal(t, tt.want, r.Forward(tt.src, tt.steps, tt.deferred))
		})
	}
}

func TestPathResolver_LengthEqualsSteps(t *testing.T) {
	for _, kind := range Kinds {
		b := MustBuild(kind)
		r := NewPathResolver(b)
		for _, n := range b.AllNodes() {
			for steps := 1; steps <= 5; steps++ {
				for _, deferred := range []bool{false, true} {
					path := r.Forward(n.ID(), steps, deferred)
					assert.Len(t, path, steps, "%s src=%d steps=%d", kind, n.ID(), steps)
					for _, id := range path {
						assert.NotNil(t, b.Node(id))
					}
				}
			}
		}
	}
}

func TestPathResolver_RejectsBadInput(t *testing.T) {
	r := NewPathResolver(MustBuild(Square))
	assert.Nil(t, r.Forward(0, 0, false))
	assert.Nil(t, r.Forward(0, -1, false))
	assert.Nil(t, r.Forward(NoNode, 3, false))
	assert.Nil(t, r.Forward(100, 3, false))
}
