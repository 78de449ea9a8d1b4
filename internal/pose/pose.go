// Package pose holds the named pose presets of the spider.
//
// A preset is an atomic, idempotent assignment of joint angles. Presets
// that undo another preset go through the normal Reset contract of the
// parts they touch.
package pose

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/joint"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Preset names.
const (
	Attack      = "attack"
	ResetAttack = "reset-attack"
	OpenMouth   = "open-mouth"
	CloseMouth  = "close-mouth"
	Jump        = "jump"
	Land        = "land"
	Walk        = "walk"
	StopWalk    = "stop-walk"
)

// Preset is a named pose bound to a key.
type Preset struct {
	Name        string
	Key         rune
	Description string
	apply       func(s *assembly.Spider)
}

// Apply poses s.
func (p Preset) Apply(s *assembly.Spider) {
	logger.Named("pose").Info("apply preset", zap.String("preset", p.Name))
	p.apply(s)
}

// JumpHeight is how far the jump preset lifts the spider.
var JumpHeight = math.Vec3{Y: 1}

var walkSpread = [2][assembly.LegsPerSide]float32{
	assembly.Left:  {30, 0, -60},
	assembly.Right: {30, 0, -40},
}

var presets = []Preset{
	{
		Name: Attack, Key: 'a', Description: "raise the tail to strike",
		apply: func(s *assembly.Spider) {
			tail := s.Tail()
			tail.SetCurrentAngle(-30, joint.AxisU)
			tail.Part(assembly.TailLink2).SetCurrentAngle(-70, joint.AxisU)
			tail.Part(assembly.TailLink4).SetCurrentAngle(0, joint.AxisU)
			tail.Part(assembly.TailNeedle).SetCurrentAngle(10, joint.AxisU)
		},
	},
	{
		Name: ResetAttack, Key: 'A', Description: "lower the tail",
		apply: func(s *assembly.Spider) {
			s.Tail().Reset(scenegraph.ResetAll)
		},
	},
	{
		Name: OpenMouth, Key: 'o', Description: "spread the fangs",
		apply: func(s *assembly.Spider) {
			for _, side := range []assembly.Side{assembly.Left, assembly.Right} {
				s.Head().Tooth(side).SetCurrentAngle(side.Sign()*20, joint.AxisV)
			}
		},
	},
	{
		Name: CloseMouth, Key: 'c', Description: "close the fangs",
		apply: func(s *assembly.Spider) {
			for _, side := range []assembly.Side{assembly.Left, assembly.Right} {
				s.Head().Tooth(side).SetCurrentAngle(-side.Sign()*20, joint.AxisV)
			}
		},
	},
	{
		Name: Jump, Key: 'j', Description: "lift off with bent legs",
		apply: func(s *assembly.Spider) {
			s.SetCurrentOffset(s.DefaultOffset().Add(JumpHeight))
			for _, leg := range s.Body().AllLegs() {
				leg.Part(assembly.LegLink2).SetCurrentAngle(130, joint.AxisU)
				leg.Part(assembly.LegLink3).SetDefaultAngle(-10, joint.AxisU)
			}
		},
	},
	{
		Name: Land, Key: 'J', Description: "return to the ground",
		apply: func(s *assembly.Spider) {
			s.ResetOffset()
			s.Body().Reset(scenegraph.ResetAll)
		},
	},
	{
		Name: Walk, Key: 'w', Description: "stride the legs",
		apply: func(s *assembly.Spider) {
			for _, side := range []assembly.Side{assembly.Left, assembly.Right} {
				for i := 0; i < assembly.LegsPerSide; i++ {
					angle := assembly.LegAngle(side, walkSpread[side][i])
					s.Body().Leg(side, i).SetDefaultAngle(angle, joint.AxisV)
				}
			}
		},
	},
	{
		Name: StopWalk, Key: 'W', Description: "stand still",
		apply: func(s *assembly.Spider) {
			s.Body().Reset(scenegraph.ResetAll)
		},
	},
}

// All returns every preset in registration order.
func All() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// ByKey finds the preset bound to key.
func ByKey(key rune) (Preset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// MustLookup is Lookup for names known at compile time.
func MustLookup(name string) Preset {
	p, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("pose: unknown preset %q", name))
	}
	return p
}
