package behave

import (
	"fmt"
	"iter"
	"slices"
)

type testContext struct {
	depth int
}

// recorder collects hook calls in the order they happen.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	if r != nil {
		r.calls = append(r.calls, fmt.Sprintf(format, args...))
	}
}

// fakeEvents is a registry and a bus in one; subscribing to an undefined event fails.
type fakeEvents struct {
	defined map[string]bool
	subs    map[string]int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{defined: map[string]bool{}, subs: map[string]int{}}
}

func (f *fakeEvents) Define(name string) error {
	if f.defined[name] {
		return fmt.Errorf("event %s defined twice", name)
	}
	f.defined[name] = true
	return nil
}

func (f *fakeEvents) Defined(name string) bool {
	return f.defined[name]
}

func (f *fakeEvents) Subscribe(name string, _ EventHandler) error {
	if !f.defined[name] {
		return fmt.Errorf("event %s not defined", name)
	}
	f.subs[name]++
	return nil
}

type block struct {
	name      string
	behaviors []blockBehavior
	produces  []string
	consumes  []string
	baked     []blockBehavior
	bakeCalls int
	bakeErr   error
	rec       *recorder
	isSolid   *Aspect[bool, testContext]
	friction  *Aspect[float64, testContext]
	tint      *Aspect[Color, testContext]
}

func newBlock(name string, rec *recorder) *block {
	b := &block{name: name, rec: rec}
	b.isSolid = NewAspect[ANDing[testContext], bool, testContext]("solid", b)
	b.friction = NewAspect[Average[float64, testContext], float64, testContext]("friction", b)
	b.tint = NewAspect[Mix[testContext], Color, testContext]("tint", b)
	return b
}

func (b *block) String() string {
	return b.name
}

func (b *block) Behaviors() iter.Seq[blockBehavior] {
	return slices.Values(b.behaviors)
}

func (b *block) DefineEvents(registry EventRegistry) error {
	b.rec.add("%s.define", b.name)
	for _, name := range b.produces {
		if err := registry.Define(name); err != nil {
			return err
		}
	}
	return nil
}

func (b *block) SubscribeToEvents(bus EventBus) error {
	b.rec.add("%s.subscribe", b.name)
	for _, name := range b.consumes {
		if err := bus.Subscribe(name, func(any) {}); err != nil {
			return err
		}
	}
	return nil
}

func (b *block) Bake(behaviors []blockBehavior) error {
	b.rec.add("%s.bake", b.name)
	b.baked = behaviors
	b.bakeCalls++
	return b.bakeErr
}

type blockBehavior interface {
	Behavior[*block]
}

type baseBehavior struct {
	subject  *block
	name     string
	produces []string
	consumes []string
}

func (b *baseBehavior) Subject() *block {
	return b.subject
}

func (b *baseBehavior) DefineEvents(registry EventRegistry) error {
	b.subject.rec.add("%s.%s.define", b.subject.name, b.name)
	for _, name := range b.produces {
		if err := registry.Define(name); err != nil {
			return err
		}
	}
	return nil
}

func (b *baseBehavior) SubscribeToEvents(bus EventBus) error {
	b.subject.rec.add("%s.%s.subscribe", b.subject.name, b.name)
	for _, name := range b.consumes {
		if err := bus.Subscribe(name, func(any) {}); err != nil {
			return err
		}
	}
	return nil
}

// Concrete behavior types. Each has its own dense ID.
type (
	foo struct{ baseBehavior }
	bar struct{ baseBehavior }
	baz struct{ baseBehavior }
)

func newFoo(subject *block) *foo {
	f := &foo{baseBehavior{subject: subject, name: "foo"}}
	subject.behaviors = append(subject.behaviors, f)
	subject.isSolid.ContributeConstant(true)
	return f
}

func newBar(subject *block) *bar {
	b := &bar{baseBehavior{subject: subject, name: "bar"}}
	subject.behaviors = append(subject.behaviors, b)
	subject.friction.ContributeConstant(0.5)
	return b
}

func newBaz(subject *block) *baz {
	b := &baz{baseBehavior{subject: subject, name: "baz"}}
	subject.behaviors = append(subject.behaviors, b)
	subject.tint.ContributeConstant(NewColor(1, 1, 1, 1))
	return b
}

func newTestSystem(events *fakeEvents) *BehaviorSystem[*block, blockBehavior] {
	return FactoryNewBehaviorSystem[*block, blockBehavior](events, events)
}

// counted returns a contributor that yields value and counts its calls.
func counted[V any](calls *int, value V) Contributor[V, testContext] {
	return func(V, testContext) V {
		*calls++
		return value
	}
}
