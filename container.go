package dataproperty

import (
	"fmt"
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// Number is the set of values the containers aggregate.
type Number interface {
	constraints.Integer | constraints.Float
}

// MinMaxContainer tracks the smallest and largest observed value.
type MinMaxContainer[T Number] struct {
	min, max T
	ok       bool
}

// NewMinMaxContainer returns a container seeded with values.
func NewMinMaxContainer[T Number](values ...T) *MinMaxContainer[T] {
	c := &MinMaxContainer[T]{}
	for _, v := range values {
		c.Update(v)
	}
	return c
}

// Update folds v into the container.
func (c *MinMaxContainer[T]) Update(v T) {
	if !c.ok {
		c.min, c.max, c.ok = v, v, true
		return
	}
	c.min = min(c.min, v)
	c.max = max(c.max, v)
}

// Merge folds the range of other into the container.
func (c *MinMaxContainer[T]) Merge(other *MinMaxContainer[T]) {
	if other == nil || !other.ok {
		return
	}
	c.Update(other.min)
	c.Update(other.max)
}

// Min returns the smallest value and whether any value was observed.
func (c *MinMaxContainer[T]) Min() (T, bool) { return c.min, c.ok }

// Max returns the largest value and whether any value was observed.
func (c *MinMaxContainer[T]) Max() (T, bool) { return c.max, c.ok }

// Mean returns the midpoint of min and max, or NaN when empty.
func (c *MinMaxContainer[T]) Mean() float64 {
	if !c.ok {
		return math.NaN()
	}
	return (float64(c.min) + float64(c.max)) / 2
}

// Diff returns max - min, or NaN when empty.
func (c *MinMaxContainer[T]) Diff() float64 {
	if !c.ok {
		return math.NaN()
	}
	return float64(c.max) - float64(c.min)
}

// HasValue reports whether any value was observed.
func (c *MinMaxContainer[T]) HasValue() bool { return c.ok }

// IsZero reports whether min and max are both zero.
func (c *MinMaxContainer[T]) IsZero() bool { return c.ok && c.min == 0 && c.max == 0 }

// IsSameValue reports whether min equals max.
func (c *MinMaxContainer[T]) IsSameValue() bool { return c.ok && c.min == c.max }

// Equal reports whether both containers observed the same range.
func (c *MinMaxContainer[T]) Equal(other *MinMaxContainer[T]) bool {
	if other == nil {
		return false
	}
	if !c.ok || !other.ok {
		return c.ok == other.ok
	}
	return c.min == other.min && c.max == other.max
}

func (c *MinMaxContainer[T]) String() string {
	if !c.ok {
		return "min=none, max=none"
	}
	return fmt.Sprintf("min=%v, max=%v", c.min, c.max)
}

// ListContainer keeps every observed value so that Mean is the exact
// average.
type ListContainer[T Number] struct {
	values []T
}

// NewListContainer returns a container seeded with values.
func NewListContainer[T Number](values ...T) *ListContainer[T] {
	return &ListContainer[T]{values: append([]T(nil), values...)}
}

// Update appends v.
func (c *ListContainer[T]) Update(v T) { c.values = append(c.values, v) }

// Merge appends every value of other.
func (c *ListContainer[T]) Merge(other *ListContainer[T]) {
	if other == nil {
		return
	}
	c.values = append(c.values, other.values...)
}

// Values returns a copy of the observed values in order.
func (c *ListContainer[T]) Values() []T { return append([]T(nil), c.values...) }

// Min returns the smallest value and whether any value was observed.
func (c *ListContainer[T]) Min() (T, bool) {
	var out T
	for i, v := range c.values {
		if i == 0 || v < out {
			out = v
		}
	}
	return out, len(c.values) > 0
}

// Max returns the largest value and whether any value was observed.
func (c *ListContainer[T]) Max() (T, bool) {
	var out T
	for i, v := range c.values {
		if i == 0 || v > out {
			out = v
		}
	}
	return out, len(c.values) > 0
}

// Mean returns the average of the observed values, or NaN when empty.
func (c *ListContainer[T]) Mean() float64 {
	if len(c.values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range c.values {
		sum += float64(v)
	}
	return sum / float64(len(c.values))
}

// Diff returns max - min, or NaN when empty.
func (c *ListContainer[T]) Diff() float64 {
	lo, ok := c.Min()
	if !ok {
		return math.NaN()
	}
	hi, _ := c.Max()
	return float64(hi) - float64(lo)
}

// HasValue reports whether any value was observed.
func (c *ListContainer[T]) HasValue() bool { return len(c.values) > 0 }

// IsZero reports whether every observed value is zero.
func (c *ListContainer[T]) IsZero() bool {
	lo, ok := c.Min()
	hi, _ := c.Max()
	return ok && lo == 0 && hi == 0
}

// IsSameValue reports whether every observed value is equal.
func (c *ListContainer[T]) IsSameValue() bool {
	lo, ok := c.Min()
	hi, _ := c.Max()
	return ok && lo == hi
}

// Equal reports whether both containers observed the same sequence.
func (c *ListContainer[T]) Equal(other *ListContainer[T]) bool {
	return other != nil && slices.Equal(c.values, other.values)
}

func (c *ListContainer[T]) String() string {
	lo, ok := c.Min()
	if !ok {
		return "min=none, max=none"
	}
	hi, _ := c.Max()
	return fmt.Sprintf("min=%v, max=%v", lo, hi)
}
