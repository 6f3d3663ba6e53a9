package behave

import (
	"errors"
	"fmt"
)

// configurationError is implemented by every structural misuse the package detects.
type configurationError interface {
	error
	configuration()
}

// IsConfigurationError reports whether err (or anything it wraps) is a configuration error.
func IsConfigurationError(err error) bool {
	var target configurationError
	return errors.As(err, &target)
}

type ContributorLimitError struct {
	Aspect string
	Limit  int
}

func (e ContributorLimitError) Error() string {
	return fmt.Sprintf("aspect %q accepts at most %d contributor(s)", e.Aspect, e.Limit)
}

func (ContributorLimitError) configuration() {}

type BakedError struct {
	Op string
}

func (e BakedError) Error() string {
	return fmt.Sprintf("behavior system is already baked: cannot %s", e.Op)
}

func (BakedError) configuration() {}

type IDAlreadySetError struct {
	Key TypeKey
	ID  int
}

func (e IDAlreadySetError) Error() string {
	return fmt.Sprintf("behavior type %v already has ID %d", e.Key, e.ID)
}

func (IDAlreadySetError) configuration() {}

type DuplicateBehaviorError struct {
	Key TypeKey
}

func (e DuplicateBehaviorError) Error() string {
	return fmt.Sprintf("subject already has a behavior of type %v", e.Key)
}

func (DuplicateBehaviorError) configuration() {}

type TypeCapacityError struct {
	Limit int
}

func (e TypeCapacityError) Error() string {
	return fmt.Sprintf("behavior type index at maximum capacity (%d)", e.Limit)
}

func (TypeCapacityError) configuration() {}

type NilBehaviorError struct{}

func (e NilBehaviorError) Error() string {
	return "behavior is nil"
}

func (NilBehaviorError) configuration() {}

// NilSubjectError reports a subject that is the zero value, or a behavior whose Subject returns one.
type NilSubjectError struct {
	Behavior TypeKey
}

func (e NilSubjectError) Error() string {
	if e.Behavior == nil {
		return "subject is nil"
	}
	return fmt.Sprintf("behavior %v has no subject", e.Behavior)
}

func (NilSubjectError) configuration() {}

// HookError wraps a failure returned by a subject or behavior hook during Bake.
type HookError struct {
	Subject any
	Hook    string
	Err     error
}

func (e HookError) Error() string {
	return fmt.Sprintf("%s hook failed for subject %v: %v", e.Hook, e.Subject, e.Err)
}

func (e HookError) Unwrap() error {
	return e.Err
}
