// Package dice picks die faces and the orientation a renderer should show them in.
//
// The face value and its presentation are drawn separately: the value comes
// from a Source, the presentation is the fixed base rotation for that value
// plus whole-turn spins that never change which face ends up in front.
package dice

const (
	// Faces is the number of sides on the die
	Faces = 6

	// MinSpins and MaxSpins bound the extra whole turns added per axis
	MinSpins = 2
	MaxSpins = 4

	fullTurn = 360
)

// Presentation tells a renderer how to rotate a CSS cube so the scored face
// is in front. RotateX/RotateY already include the spins.
type Presentation struct {
	RotateX int `json:"rotateX"`
	RotateY int `json:"rotateY"`
	SpinsX  int `json:"spinsX"`
	SpinsY  int `json:"spinsY"`
}

// Outcome is a single roll of the die.
type Outcome struct {
	Value        int          `json:"value"`
	Presentation Presentation `json:"presentation"`
}

// Cube layout: front 1, bottom 2, right 3, left 4, top 5, back 6.
// Index 0 is unused.
var baseRotations = [Faces + 1][2]int{
	{0, 0},
	{0, 0},
	{90, 0},
	{0, -90},
	{0, 90},
	{-90, 0},
	{0, 180},
}

// faceByRotation is keyed by rotations normalised into [0, 360).
var faceByRotation = func() map[[2]int]int {
	m := make(map[[2]int]int, Faces)
	for v := 1; v <= Faces; v++ {
		r := baseRotations[v]
		m[[2]int{normalize(r[0]), normalize(r[1])}] = v
	}
	return m
}()

// BaseRotation returns the rotation that brings face value to the front
// from the canonical starting presentation.
func BaseRotation(value int) (rx, ry int, ok bool) {
	if value < 1 || value > Faces {
		return 0, 0, false
	}
	r := baseRotations[value]
	return r[0], r[1], true
}

// Decode reports which face a presentation shows. It returns false for
// orientations that are not a whole-turn variant of a base rotation.
func Decode(p Presentation) (int, bool) {
	v, ok := faceByRotation[[2]int{normalize(p.RotateX), normalize(p.RotateY)}]
	return v, ok
}

func normalize(deg int) int {
	d := deg % fullTurn
	if d < 0 {
		d += fullTurn
	}
	return d
}

// Selector draws outcomes. Values come from values; spins come from cosmetic.
// Not safe for concurrent use.
type Selector struct {
	values   Source
	cosmetic Source
}

// NewSelector creates a selector. A nil cosmetic source reuses values.
func NewSelector(values, cosmetic Source) *Selector {
	if cosmetic == nil {
		cosmetic = values
	}
	return &Selector{values: values, cosmetic: cosmetic}
}

// Select draws a face uniformly from 1..6 and builds its presentation.
func (s *Selector) Select() Outcome {
	value := s.values.Intn(Faces) + 1
	rx, ry, _ := BaseRotation(value)
	sx, sy := s.spins(), s.spins()
	return Outcome{
		Value: value,
		Presentation: Presentation{
			RotateX: rx + sx*fullTurn,
			RotateY: ry + sy*fullTurn,
			SpinsX:  sx,
			SpinsY:  sy,
		},
	}
}

func (s *Selector) spins() int {
	return MinSpins + s.cosmetic.Intn(MaxSpins-MinSpins+1)
}
