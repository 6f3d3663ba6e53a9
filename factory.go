package behave

type factory struct{}

var Factory factory

func (f factory) NewQuery() Query {
	return newQuery()
}

// FactoryNewAspect creates an aspect bound to strategy. The strategy is fixed for the aspect's lifetime.
func FactoryNewAspect[V, C any](name string, owner any, strategy Strategy[V, C]) *Aspect[V, C] {
	return &Aspect[V, C]{
		name:     name,
		owner:    owner,
		strategy: strategy,
	}
}

// FactoryNewBehaviorSystem creates an unbaked registry for one (subject, behavior) pairing.
// The event registry and bus are handed to the subjects' and behaviors' hooks during Bake.
func FactoryNewBehaviorSystem[S Subject[B], B Behavior[S]](events EventRegistry, bus EventBus) *BehaviorSystem[S, B] {
	return &BehaviorSystem[S, B]{
		types:    newTypeIndex(MaxBehaviorTypes),
		pending:  make(map[S][]pendingBehavior[B]),
		baked:    make(map[S]bakedSubject[B]),
		eventReg: events,
		eventBus: bus,
	}
}
