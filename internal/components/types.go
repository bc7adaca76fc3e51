// Package components holds the sample plain-data component types shipped
// with the engine core. Components are plain data: no behavior, no
// Clone/Serialize methods baked into the type itself. The registry's meta
// thunks and the serde package own those concerns instead.
package components

import (
	"encoding/json"
	"time"

	"github.com/barhaim/arkgo/internal/corelog"
)

// Vector2 is a 2D vector of float64s, wire-formatted as {"x":…,"y":…}.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle, wire-formatted as
// {"top":…,"left":…,"height":…,"width":…}.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
}

// Color is an RGBA color with 0-255 channel values, wire-formatted as
// {"r":…,"g":…,"b":…,"a":…}.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Duration wraps time.Duration so it wire-formats as plain seconds instead
// of Go's default nanosecond-integer encoding.
type Duration time.Duration

// Seconds returns d as a floating-point second count.
func (d Duration) Seconds() float64 { return time.Duration(d).Seconds() }

// DurationFromSeconds builds a Duration from a second count.
func DurationFromSeconds(s float64) Duration { return Duration(s * float64(time.Second)) }

// MarshalJSON encodes d as a bare number of seconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Seconds())
}

// UnmarshalJSON decodes a bare number of seconds into d.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}
	*d = DurationFromSeconds(secs)
	return nil
}

// AIState is the enum driving AIController's current behavior mode.
type AIState int

const (
	AIStateIdle AIState = iota
	AIStatePatrol
	AIStateChase
	AIStateAttack
	AIStateFlee
	AIStateDead
)

var aiStateNames = [...]string{"Idle", "Patrol", "Chase", "Attack", "Flee", "Dead"}

func (s AIState) String() string {
	if int(s) < 0 || int(s) >= len(aiStateNames) {
		return "Unknown"
	}
	return aiStateNames[s]
}

// ParseAIState looks up an AIState by its serialized name.
func ParseAIState(name string) (AIState, bool) {
	for i, n := range aiStateNames {
		if n == name {
			return AIState(i), true
		}
	}
	return AIStateIdle, false
}

// MarshalJSON encodes s as its symbolic name.
func (s AIState) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON decodes a symbolic name into s, falling back to
// AIStateIdle with a warning log for a name this enum doesn't know.
func (s *AIState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := ParseAIState(name)
	if !ok {
		corelog.Warnf(corelog.CategorySerde, "unknown AIState %q, defaulting to Idle", name)
	}
	*s = v
	return nil
}

// AIBehavior is the enum driving AIController's disposition toward other
// entities.
type AIBehavior int

const (
	AIBehaviorNeutral AIBehavior = iota
	AIBehaviorAggressive
	AIBehaviorDefensive
	AIBehaviorFriendly
	AIBehaviorCoward
)

var aiBehaviorNames = [...]string{"Neutral", "Aggressive", "Defensive", "Friendly", "Coward"}

func (b AIBehavior) String() string {
	if int(b) < 0 || int(b) >= len(aiBehaviorNames) {
		return "Unknown"
	}
	return aiBehaviorNames[b]
}

// ParseAIBehavior looks up an AIBehavior by its serialized name.
func ParseAIBehavior(name string) (AIBehavior, bool) {
	for i, n := range aiBehaviorNames {
		if n == name {
			return AIBehavior(i), true
		}
	}
	return AIBehaviorNeutral, false
}

// MarshalJSON encodes b as its symbolic name.
func (b AIBehavior) MarshalJSON() ([]byte, error) { return json.Marshal(b.String()) }

// UnmarshalJSON decodes a symbolic name into b, falling back to
// AIBehaviorNeutral with a warning log on an unrecognized name.
func (b *AIBehavior) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := ParseAIBehavior(name)
	if !ok {
		corelog.Warnf(corelog.CategorySerde, "unknown AIBehavior %q, defaulting to Neutral", name)
	}
	*b = v
	return nil
}

// StatusType enumerates the status effects Health tracks.
type StatusType int

const (
	StatusPoison StatusType = iota
	StatusBurn
	StatusFreeze
	StatusStun
	StatusShield
	StatusRegen
)

var statusTypeNames = [...]string{"Poison", "Burn", "Freeze", "Stun", "Shield", "Regen"}

func (s StatusType) String() string {
	if int(s) < 0 || int(s) >= len(statusTypeNames) {
		return "Unknown"
	}
	return statusTypeNames[s]
}

// ParseStatusType looks up a StatusType by its serialized name.
func ParseStatusType(name string) (StatusType, bool) {
	for i, n := range statusTypeNames {
		if n == name {
			return StatusType(i), true
		}
	}
	return StatusPoison, false
}

// MarshalJSON encodes s as its symbolic name.
func (s StatusType) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON decodes a symbolic name into s, falling back to
// StatusPoison with a warning log on an unrecognized name.
func (s *StatusType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	v, ok := ParseStatusType(name)
	if !ok {
		corelog.Warnf(corelog.CategorySerde, "unknown StatusType %q, defaulting to Poison", name)
	}
	*s = v
	return nil
}

// StatusEffect is a timed modifier applied to an entity's Health.
type StatusEffect struct {
	Type     StatusType `json:"type"`
	Duration Duration   `json:"duration"`
	Strength float64    `json:"strength"`
}
