package behave

import (
	"cmp"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is satisfied by value types that support addition, a zero identity and division.
type Number interface {
	constraints.Integer | constraints.Float
}

// Flags is satisfied by integer backed flag enumerations.
type Flags interface {
	constraints.Integer
}

var (
	_ Strategy[int, any]   = Exclusive[int, any]{}
	_ Strategy[int, any]   = Chaining[int, any]{}
	_ Strategy[bool, any]  = ANDing[any]{}
	_ Strategy[bool, any]  = ORing[any]{}
	_ Strategy[int, any]   = Average[int, any]{}
	_ Strategy[int, any]   = Minimum[int, any]{}
	_ Strategy[int, any]   = Maximum[int, any]{}
	_ Strategy[uint8, any] = Masking[uint8, any]{}
	_ Strategy[Color, any] = Mix[any]{}
)

// Exclusive takes the output of its single contributor, ignoring the original value.
type Exclusive[V, C any] struct{}

func (Exclusive[V, C]) MaxContributorCount() int {
	return 1
}

func (Exclusive[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	if len(contributors) == 0 {
		return original
	}
	return contributors[0](original, ctx)
}

// Chaining folds contributors in registration order, each one receiving the previous result.
// Contributors that disagree produce results that depend on the order they were added in.
type Chaining[V, C any] struct{}

func (Chaining[V, C]) MaxContributorCount() int {
	return Unbounded
}

func (Chaining[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	result := original
	for _, contribute := range contributors {
		result = contribute(result, ctx)
	}
	return result
}

// ANDing combines boolean contributions with logical AND.
// Every contributor is called, even after the result turned false.
type ANDing[C any] struct{}

func (ANDing[C]) MaxContributorCount() int {
	return Unbounded
}

func (ANDing[C]) Combine(original bool, ctx C, contributors []Contributor[bool, C]) bool {
	result := original
	for _, contribute := range contributors {
		value := contribute(result, ctx)
		result = result && value
	}
	return result
}

// ORing combines boolean contributions with logical OR, calling every contributor.
type ORing[C any] struct{}

func (ORing[C]) MaxContributorCount() int {
	return Unbounded
}

func (ORing[C]) Combine(original bool, ctx C, contributors []Contributor[bool, C]) bool {
	result := original
	for _, contribute := range contributors {
		value := contribute(result, ctx)
		result = result || value
	}
	return result
}

// Average returns the mean of all contributions, each computed against the original value.
// Integer types use integer division. Without contributors the original is returned.
// Sums are accumulated at 64 bits so narrow types neither overflow nor lose the count.
type Average[V Number, C any] struct{}

func (Average[V, C]) MaxContributorCount() int {
	return Unbounded
}

func (Average[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	if len(contributors) == 0 {
		return original
	}
	n := len(contributors)

	switch reflect.TypeFor[V]().Kind() {
	case reflect.Float32, reflect.Float64:
		var sum float64
		for _, contribute := range contributors {
			sum += float64(contribute(original, ctx))
		}
		return V(sum / float64(n))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		var sum uint64
		for _, contribute := range contributors {
			sum += uint64(contribute(original, ctx))
		}
		return V(sum / uint64(n))

	default:
		var sum int64
		for _, contribute := range contributors {
			sum += int64(contribute(original, ctx))
		}
		return V(sum / int64(n))
	}
}

// Minimum returns the smallest contribution. Ties keep the earliest registered value.
type Minimum[V cmp.Ordered, C any] struct{}

func (Minimum[V, C]) MaxContributorCount() int {
	return Unbounded
}

func (Minimum[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	return extreme(original, ctx, contributors, func(candidate, best V) bool {
		return cmp.Less(candidate, best)
	})
}

// Maximum returns the largest contribution. Ties keep the earliest registered value.
type Maximum[V cmp.Ordered, C any] struct{}

func (Maximum[V, C]) MaxContributorCount() int {
	return Unbounded
}

func (Maximum[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	return extreme(original, ctx, contributors, func(candidate, best V) bool {
		return cmp.Less(best, candidate)
	})
}

// extreme seeds with the first contribution and replaces it only on a strict improvement.
func extreme[V, C any](original V, ctx C, contributors []Contributor[V, C], better func(candidate, best V) bool) V {
	if len(contributors) == 0 {
		return original
	}
	best := contributors[0](original, ctx)
	for _, contribute := range contributors[1:] {
		if candidate := contribute(original, ctx); better(candidate, best) {
			best = candidate
		}
	}
	return best
}

// Masking ANDs the bit patterns of all contributions into the original flags.
type Masking[V Flags, C any] struct{}

func (Masking[V, C]) MaxContributorCount() int {
	return Unbounded
}

func (Masking[V, C]) Combine(original V, ctx C, contributors []Contributor[V, C]) V {
	bits := uint64(original)
	for _, contribute := range contributors {
		bits &= uint64(contribute(original, ctx))
	}
	return V(bits)
}

// Mix averages color contributions channel by channel.
// A single Neutral contribution wins outright and stops evaluation.
type Mix[C any] struct{}

func (Mix[C]) MaxContributorCount() int {
	return Unbounded
}

func (Mix[C]) Combine(original Color, ctx C, contributors []Contributor[Color, C]) Color {
	if len(contributors) == 0 {
		return original
	}
	var sum Color
	for _, contribute := range contributors {
		color := contribute(original, ctx)
		if color.IsNeutral() {
			return Neutral
		}
		sum.rgba = sum.rgba.Add(color.rgba)
	}
	sum.rgba = sum.rgba.Mul(1 / float32(len(contributors)))
	return sum
}
