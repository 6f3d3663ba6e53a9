package behave

import (
	"iter"
	"math"
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Unbounded is the contributor limit of strategies that accept any number of contributors.
const Unbounded = math.MaxInt

// UnknownID marks a behavior type that has not been assigned a dense ID yet.
const UnknownID = -1

// Contributor supplies one candidate value for an aspect.
type Contributor[V, C any] func(current V, ctx C) V

// Strategy combines an original value and the contributions registered on an aspect.
// MaxContributorCount is enforced by the aspect when a contributor is added.
type Strategy[V, C any] interface {
	MaxContributorCount() int
	Combine(original V, ctx C, contributors []Contributor[V, C]) V
}

type EventRegistry interface {
	Define(name string) error
	Defined(name string) bool
}

type EventHandler func(payload any)

type EventBus interface {
	Subscribe(name string, handler EventHandler) error
}

// Behavior is a unit of logic attached to exactly one subject.
type Behavior[S any] interface {
	Subject() S
	DefineEvents(EventRegistry) error
	SubscribeToEvents(EventBus) error
}

// Subject hosts behaviors and aspects. Bake receives the dense behavior array,
// indexed by behavior type ID, once the owning BehaviorSystem is baked.
type Subject[B any] interface {
	comparable
	Behaviors() iter.Seq[B]
	DefineEvents(EventRegistry) error
	SubscribeToEvents(EventBus) error
	Bake(behaviors []B) error
}

// TypeKey identifies a concrete behavior type.
type TypeKey = reflect.Type

// TypeResolver maps behavior type keys to their dense IDs.
type TypeResolver interface {
	IDOf(key TypeKey) (int, bool)
}

type QueryNode interface {
	Evaluate(resolver TypeResolver, present mask.Mask) bool
}

type Query interface {
	QueryNode
	And(items ...any) QueryNode
	Or(items ...any) QueryNode
	Not(items ...any) QueryNode
}
