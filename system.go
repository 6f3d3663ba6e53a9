package behave

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/TheBitDrifter/mask"
	iter_util "github.com/TheBitDrifter/util/iter"
)

// BehaviorSystem assigns dense IDs to behavior types and bakes each subject's behaviors
// into an array indexed by those IDs. One system exists per subject/behavior pairing.
//
// Registration and baking are single threaded. Once Bake returns, every read method is
// safe for concurrent use.
type BehaviorSystem[S Subject[B], B Behavior[S]] struct {
	isBaked  bool
	types    *typeIndex
	subjects []S
	pending  map[S][]pendingBehavior[B]
	baked    map[S]bakedSubject[B]
	eventReg EventRegistry
	eventBus EventBus
}

type pendingBehavior[B any] struct {
	behavior B
	id       int
}

type bakedSubject[B any] struct {
	behaviors []B
	present   mask.Mask
}

// KeyOf returns the type key of T. For pointer receivers pass the pointer type.
func KeyOf[T any]() TypeKey {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func keyOfValue(v any) TypeKey {
	return reflect.TypeOf(v)
}

// Register queues a behavior for its subject and assigns its concrete type an ID on first sighting.
func (sys *BehaviorSystem[S, B]) Register(behavior B) error {
	if sys.isBaked {
		return BakedError{Op: "register behavior"}
	}
	if err := sys.check(behavior); err != nil {
		return err
	}

	id, err := sys.types.Resolve(keyOfValue(behavior))
	if err != nil {
		return fmt.Errorf("failed to index behavior type: %w", err)
	}

	subject := behavior.Subject()
	sys.adopt(subject)
	sys.pending[subject] = append(sys.pending[subject], pendingBehavior[B]{behavior: behavior, id: id})
	return nil
}

// check rejects nil behaviors, behaviors without a subject and a second behavior
// of one type on the same subject.
func (sys *BehaviorSystem[S, B]) check(behavior B) error {
	if any(behavior) == nil {
		return NilBehaviorError{}
	}
	var zero S
	subject := behavior.Subject()
	if subject == zero {
		return NilSubjectError{Behavior: keyOfValue(behavior)}
	}

	key := keyOfValue(behavior)
	for _, queued := range sys.pending[subject] {
		if keyOfValue(queued.behavior) == key {
			return DuplicateBehaviorError{Key: key}
		}
	}
	return nil
}

// Adopt makes subject part of the next bake even if it never registers a behavior.
func (sys *BehaviorSystem[S, B]) Adopt(subject S) error {
	if sys.isBaked {
		return BakedError{Op: "adopt subject"}
	}
	var zero S
	if subject == zero {
		return NilSubjectError{}
	}
	sys.adopt(subject)
	return nil
}

func (sys *BehaviorSystem[S, B]) adopt(subject S) {
	if _, ok := sys.pending[subject]; ok {
		return
	}
	sys.subjects = append(sys.subjects, subject)
	sys.pending[subject] = nil
}

// RegisterAll adopts subject and registers every behavior it enumerates.
// The set is registered whole or not at all: on error the system is left unchanged.
func (sys *BehaviorSystem[S, B]) RegisterAll(subject S) error {
	if sys.isBaked {
		return BakedError{Op: "register subject"}
	}
	var zero S
	if subject == zero {
		return NilSubjectError{}
	}

	// Drained up front so the whole set is validated before any of it is queued.
	behaviors := iter_util.Collect(subject.Behaviors())
	if err := sys.checkAll(behaviors); err != nil {
		return err
	}

	sys.adopt(subject)
	for _, behavior := range behaviors {
		if err := sys.Register(behavior); err != nil {
			return err
		}
	}
	return nil
}

// checkAll runs check over a batch, including duplicates within the batch and
// the type capacity the batch would need.
func (sys *BehaviorSystem[S, B]) checkAll(behaviors []B) error {
	seen := make(map[S]map[TypeKey]struct{})
	fresh := make(map[TypeKey]struct{})

	for _, behavior := range behaviors {
		if err := sys.check(behavior); err != nil {
			return err
		}
		key := keyOfValue(behavior)
		subject := behavior.Subject()
		if _, ok := seen[subject][key]; ok {
			return DuplicateBehaviorError{Key: key}
		}
		if seen[subject] == nil {
			seen[subject] = make(map[TypeKey]struct{})
		}
		seen[subject][key] = struct{}{}
		if sys.types.GetID(key) == UnknownID {
			fresh[key] = struct{}{}
		}
	}

	if sys.types.Len()+len(fresh) > sys.types.maxCapacity {
		return fmt.Errorf("failed to index behavior type: %w", TypeCapacityError{Limit: sys.types.maxCapacity})
	}
	return nil
}

// Bake freezes the type IDs and hands every subject its dense behavior array.
// For each subject the event definition hooks run before any subscription hook.
// It returns the number of distinct behavior types.
func (sys *BehaviorSystem[S, B]) Bake() (int, error) {
	if sys.isBaked {
		return 0, BakedError{Op: "bake"}
	}
	sys.isBaked = true

	count := sys.types.Len()
	for _, subject := range sys.subjects {
		queued := sys.pending[subject]

		size := 0
		for _, entry := range queued {
			size = max(size, entry.id+1)
		}
		behaviors := make([]B, size)
		var present mask.Mask
		for _, entry := range queued {
			behaviors[entry.id] = entry.behavior
			present.Mark(uint32(entry.id))
		}

		if err := sys.wireEvents(subject, queued); err != nil {
			return count, err
		}
		if err := subject.Bake(behaviors); err != nil {
			return count, HookError{Subject: subject, Hook: "bake", Err: err}
		}

		sys.baked[subject] = bakedSubject[B]{behaviors: behaviors, present: present}
		Config.logger.Debug("baked subject",
			"subject", subject,
			"behaviors", len(queued),
			"slots", size,
		)
	}
	sys.pending = nil

	Config.logger.Info("behavior system baked",
		"subjects", len(sys.subjects),
		"types", count,
	)
	return count, nil
}

// wireEvents runs all producers (event definitions) before all consumers (subscriptions).
func (sys *BehaviorSystem[S, B]) wireEvents(subject S, queued []pendingBehavior[B]) error {
	if err := subject.DefineEvents(sys.eventReg); err != nil {
		return HookError{Subject: subject, Hook: "define events", Err: err}
	}
	for _, entry := range queued {
		if err := entry.behavior.DefineEvents(sys.eventReg); err != nil {
			return HookError{Subject: subject, Hook: fmt.Sprintf("define events (%v)", keyOfValue(entry.behavior)), Err: err}
		}
	}

	if err := subject.SubscribeToEvents(sys.eventBus); err != nil {
		return HookError{Subject: subject, Hook: "subscribe to events", Err: err}
	}
	for _, entry := range queued {
		if err := entry.behavior.SubscribeToEvents(sys.eventBus); err != nil {
			return HookError{Subject: subject, Hook: fmt.Sprintf("subscribe to events (%v)", keyOfValue(entry.behavior)), Err: err}
		}
	}
	return nil
}

func (sys *BehaviorSystem[S, B]) Baked() bool {
	return sys.isBaked
}

// Count returns the number of distinct behavior types seen so far.
func (sys *BehaviorSystem[S, B]) Count() int {
	return sys.types.Len()
}

// IDOf returns the dense ID of a behavior type.
func (sys *BehaviorSystem[S, B]) IDOf(key TypeKey) (int, bool) {
	id := sys.types.GetID(key)
	return id, id != UnknownID
}

// KeyFor returns the behavior type that owns id.
func (sys *BehaviorSystem[S, B]) KeyFor(id int) (TypeKey, bool) {
	if id < 0 || id >= sys.types.Len() {
		return nil, false
	}
	return sys.types.Key(id), true
}

// Behaviors returns the baked array of subject. Empty slots hold the zero value of B.
func (sys *BehaviorSystem[S, B]) Behaviors(subject S) ([]B, bool) {
	baked, ok := sys.baked[subject]
	return baked.behaviors, ok
}

// Mask returns the set of behavior type IDs present on a baked subject.
func (sys *BehaviorSystem[S, B]) Mask(subject S) (mask.Mask, bool) {
	baked, ok := sys.baked[subject]
	return baked.present, ok
}

// Subjects iterates baked subjects in registration order.
func (sys *BehaviorSystem[S, B]) Subjects() iter.Seq[S] {
	return func(yield func(S) bool) {
		if !sys.isBaked {
			return
		}
		for _, subject := range sys.subjects {
			if _, ok := sys.baked[subject]; !ok {
				continue
			}
			if !yield(subject) {
				return
			}
		}
	}
}

// Matching iterates baked subjects whose behavior set satisfies query.
func (sys *BehaviorSystem[S, B]) Matching(query QueryNode) iter.Seq[S] {
	return func(yield func(S) bool) {
		for subject := range sys.Subjects() {
			if !query.Evaluate(sys, sys.baked[subject].present) {
				continue
			}
			if !yield(subject) {
				return
			}
		}
	}
}

// BehaviorOf looks up the behavior of type T in a baked array.
func BehaviorOf[T any, S Subject[B], B Behavior[S]](sys *BehaviorSystem[S, B], behaviors []B) (T, bool) {
	var zero T
	id, ok := sys.IDOf(KeyOf[T]())
	if !ok || id >= len(behaviors) {
		return zero, false
	}
	found, ok := any(behaviors[id]).(T)
	return found, ok
}
