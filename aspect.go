package behave

// ContributionFlag annotates a contribution when it is added to an aspect.
type ContributionFlag uint8

const (
	// SoleContributor states that the contributing behavior expects no other contributors.
	// It is advisory: only the strategy's contributor limit is enforced.
	SoleContributor ContributionFlag = 1 << iota
)

// Aspect is a named value slot resolved by one strategy over the contributions registered on it.
// Contributors are added while subjects and behaviors are set up; afterwards GetValue is read-only
// and safe for concurrent use.
type Aspect[V, C any] struct {
	name         string
	owner        any
	strategy     Strategy[V, C]
	contributors []Contributor[V, C]
	sole         []bool
}

// NewAspect binds a zero-value strategy of type S to a new aspect.
func NewAspect[S Strategy[V, C], V, C any](name string, owner any) *Aspect[V, C] {
	var strategy S
	return FactoryNewAspect[V, C](name, owner, strategy)
}

func (a *Aspect[V, C]) Name() string {
	return a.name
}

func (a *Aspect[V, C]) Owner() any {
	return a.owner
}

func (a *Aspect[V, C]) Strategy() Strategy[V, C] {
	return a.strategy
}

// Len returns the number of registered contributors.
func (a *Aspect[V, C]) Len() int {
	return len(a.contributors)
}

// ContributeConstant registers a contributor that always yields value.
func (a *Aspect[V, C]) ContributeConstant(value V, flags ...ContributionFlag) error {
	return a.ContributeFunction(func(V, C) V { return value }, flags...)
}

// ContributeFunction registers fn as a contributor.
// It fails when the strategy's contributor limit is already reached.
func (a *Aspect[V, C]) ContributeFunction(fn Contributor[V, C], flags ...ContributionFlag) error {
	if limit := a.strategy.MaxContributorCount(); len(a.contributors) >= limit {
		return ContributorLimitError{Aspect: a.name, Limit: limit}
	}

	var combined ContributionFlag
	for _, flag := range flags {
		combined |= flag
	}
	sole := combined&SoleContributor != 0

	if len(a.contributors) > 0 && (sole || a.hasSole()) {
		Config.logger.Warn("aspect has more than one contributor while one expects to be alone",
			"aspect", a.name,
			"owner", a.owner,
			"contributors", len(a.contributors)+1,
		)
	}

	a.contributors = append(a.contributors, fn)
	a.sole = append(a.sole, sole)
	return nil
}

func (a *Aspect[V, C]) hasSole() bool {
	for _, sole := range a.sole {
		if sole {
			return true
		}
	}
	return false
}

// GetValue resolves the aspect from the original value and the registered contributors.
func (a *Aspect[V, C]) GetValue(original V, ctx C) V {
	return a.strategy.Combine(original, ctx, a.contributors)
}
