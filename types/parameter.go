package types

import (
	"fmt"
	"math"
)

type schedule int

const (
	fixedSchedule schedule = iota
	exponentialSchedule
	polynomialSchedule
)

// Parameter is a scalar hyper-parameter (learning rate, discount, trace decay,
// exploration rate) following a schedule over episodes.
// Step is pure: it returns the next value and leaves the receiver untouched.
type Parameter struct {
	kind  schedule
	value float64
	init  float64
	floor float64
	rate  float64
	t     int
}

// Fixed never changes
func Fixed(v float64) Parameter {
	return Parameter{kind: fixedSchedule, value: v, init: v}
}

// Exponential multiplies the value by decay every step, never going below floor
func Exponential(init, floor, decay float64) Parameter {
	return Parameter{kind: exponentialSchedule, value: init, init: init, floor: floor, rate: decay}
}

// Polynomial follows init / (t+1)^eta, never going below floor
func Polynomial(init, floor, eta float64) Parameter {
	return Parameter{kind: polynomialSchedule, value: init, init: init, floor: floor, rate: eta}
}

func (p Parameter) Value() float64 {
	return p.value
}

func (p Parameter) Step() Parameter {
	next := p
	next.t = p.t + 1
	switch p.kind {
	case exponentialSchedule:
		next.value = math.Max(p.floor, p.value*p.rate)
	case polynomialSchedule:
		next.value = math.Max(p.floor, p.init/math.Pow(float64(next.t+1), p.rate))
	}
	return next
}

func (p Parameter) String() string {
	switch p.kind {
	case exponentialSchedule:
		return fmt.Sprintf("Exponential(%v, floor=%v, decay=%v)", p.value, p.floor, p.rate)
	case polynomialSchedule:
		return fmt.Sprintf("Polynomial(%v, floor=%v, eta=%v)", p.value, p.floor, p.rate)
	default:
		return fmt.Sprintf("%v", p.value)
	}
}
