package game

import (
	"fmt"
	"strings"

	"yutnori/internal/errors"
)

// Throw is the result of one throw of the four sticks.
type Throw int

const (
	Backdo Throw = iota
	Do
	Gae
	Geol
	Yut
	Mo
)

// Throws lists every result in menu order.
var Throws = []Throw{Backdo, Do, Gae, Geol, Yut, Mo}

var throwNames = [...]string{"BACKDO", "DO", "GAE", "GEOL", "YUT", "MO"}

var throwKoreanNames = [...]string{"빽도", "도", "개", "걸", "윷", "모"}

var throwSteps = [...]int{-1, 1, 2, 3, 4, 5}

func (t Throw) valid() bool { return t >= Backdo && t <= Mo }

// Steps is the signed step count handed to the engine.
func (t Throw) Steps() int {
	if !t.valid() {
		return 0
	}
	return throwSteps[t]
}

// GrantsExtraThrow reports whether the thrower throws again.
func (t Throw) GrantsExtraThrow() bool { return t == Yut || t == Mo }

func (t Throw) String() string {
	if !t.valid() {
		return fmt.Sprintf("Throw(%d)", int(t))
	}
	return throwNames[t]
}

func (t Throw) KoreanName() string {
	if !t.valid() {
		return ""
	}
	return throwKoreanNames[t]
}

// ParseThrow accepts the names printed by String, in any case.
func ParseThrow(s string) (Throw, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range throwNames {
		if n == name {
			return Throw(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errors.ErrInvalidThrow, s)
}

func (t Throw) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("%w: %d", errors.ErrInvalidThrow, int(t))
	}
	return []byte(throwNames[t]), nil
}

func (t *Throw) UnmarshalText(text []byte) error {
	v, err := ParseThrow(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// RollRange is the exclusive upper bound of the value FromRoll expects.
const RollRange = 64

// FromRoll maps a uniform value in [0, RollRange) onto the throw distribution:
// 1 backdo, 16 do, 24 gae, 16 geol, 4 yut and 3 mo out of 64.
func FromRoll(r int) Throw {
	switch {
	case r <= 0:
		return Backdo
	case r <= 16:
		return Do
	case r <= 40:
		return Gae
	case r <= 56:
		return Geol
	case r <= 60:
		return Yut
	default:
		return Mo
	}
}

// FromBits maps four sticks, one per low bit with 1 for a flat side up, onto
// a result by counting flat sides.
func FromBits(bits uint8) Throw {
	n := 0
	for i := 0; i < 4; i++ {
		if bits&(1<<i) != 0 {
			n++
		}
	}
	switch n {
	case 0:
		return Mo
	case 1:
		return Do
	case 2:
		return Gae
	case 3:
		return Geol
	default:
		return Yut
	}
}
