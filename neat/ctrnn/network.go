// Package ctrnn compiles genetics.Genome values into stateful continuous-time
// recurrent neural networks and steps their dynamics.
package ctrnn

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/gastrodon/ctrneat/neat/genetics"
)

// ErrCompile reports a genome that cannot be compiled into a network.
var ErrCompile = errors.New("ctrnn: compile error")

// Kernel selects the step update rule a Network applies.
type Kernel byte

const (
	// KernelContinuous integrates the full CTRNN ODE, including the bias and
	// leak terms: y += ((σ(y+θ)·W − y + u) / τ) / prec.
	KernelContinuous Kernel = iota
	// KernelNonBias drops the bias/leak terms for acyclic-leaning networks:
	// y = (σ(y+u)·W) / prec, replacing rather than integrating the state.
	KernelNonBias
)

// ActivationFunc is a pure f64 -> f64 nonlinearity, supplied by the caller
// at step time so the network itself stays decoupled from any particular
// activation registry.
type ActivationFunc func(float64) float64

// Network is a compiled CTRNN: mutable state y, and the fixed bias,
// timescale, and weight parameters derived from a genome at compile time.
type Network struct {
	y      *mat.VecDense
	theta  *mat.VecDense
	tau    *mat.VecDense
	w      *mat.Dense
	kernel Kernel

	sensoryStart, sensoryEnd int
	actionStart, actionEnd   int
}

// Compile builds a Network from g. θ[i] is 1.0 for the Static node and 0.0
// otherwise; τ[i] defaults to 1.0 for every node (this spec's Connection
// carries optional bias/timescale fields for richer variants, but the
// baseline node-level θ/τ vectors this network uses do not vary per node).
// W[from,to] is the weight of the enabled connection from->to, or 0.
//
// Returns ErrCompile if any connection references a node index outside
// [0, len(nodes)).
func Compile(g *genetics.Genome, kernel Kernel) (*Network, error) {
	n := len(g.Nodes)

	theta := mat.NewVecDense(n, nil)
	tau := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		tau.SetVec(i, 1.0)
		if g.Nodes[i] == genetics.Static {
			theta.SetVec(i, 1.0)
		}
	}

	w := mat.NewDense(n, n, nil)
	for _, c := range g.Connections {
		if !c.Enabled {
			continue
		}
		if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n {
			return nil, errors.Wrapf(ErrCompile, "connection %d references out-of-range node (%d -> %d, have %d nodes)", c.Inno, c.From, c.To, n)
		}
		w.Set(c.From, c.To, c.Weight)
	}

	sensoryStart, sensoryEnd := g.SensoryRange()
	actionStart, actionEnd := g.ActionRange()

	return &Network{
		y:            mat.NewVecDense(n, nil),
		theta:        theta,
		tau:          tau,
		w:            w,
		kernel:       kernel,
		sensoryStart: sensoryStart,
		sensoryEnd:   sensoryEnd,
		actionStart:  actionStart,
		actionEnd:    actionEnd,
	}, nil
}

// Size returns the number of neurons (nodes) in the compiled network.
func (n *Network) Size() int {
	return n.y.Len()
}

// Flush resets every neuron's state to zero, used between scenario
// evaluations so one genome's evaluations do not leak into the next.
func (n *Network) Flush() {
	n.y = mat.NewVecDense(n.y.Len(), nil)
}

// Step advances the network prec sub-steps, injecting input into the
// sensory node range and applying σ as the nonlinearity.
func (n *Network) Step(prec int, input []float64, sigma ActivationFunc) {
	size := n.y.Len()
	u := mat.NewVecDense(size, nil)
	for i, v := range input {
		if n.sensoryStart+i >= n.sensoryEnd {
			break
		}
		u.SetVec(n.sensoryStart+i, v)
	}

	inv := 1.0 / float64(prec)
	for step := 0; step < prec; step++ {
		switch n.kernel {
		case KernelNonBias:
			n.stepNonBias(u, sigma, inv)
		default:
			n.stepContinuous(u, sigma, inv)
		}
	}
}

// stepContinuous applies y += ((σ(y+θ)·W − y + u) / τ) * inv.
func (n *Network) stepContinuous(u *mat.VecDense, sigma ActivationFunc, inv float64) {
	size := n.y.Len()

	activated := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		activated.SetVec(i, sigma(n.y.AtVec(i)+n.theta.AtVec(i)))
	}

	var product mat.VecDense
	product.MulVec(n.w.T(), activated)

	delta := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		v := (product.AtVec(i) - n.y.AtVec(i) + u.AtVec(i)) / n.tau.AtVec(i) * inv
		delta.SetVec(i, v)
	}

	n.y.AddVec(n.y, delta)
}

// stepNonBias applies y = (σ(y+u)·W) * inv, replacing rather than
// integrating state -- the stateless-leaning variant for acyclic networks.
func (n *Network) stepNonBias(u *mat.VecDense, sigma ActivationFunc, inv float64) {
	size := n.y.Len()

	activated := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		activated.SetVec(i, sigma(n.y.AtVec(i)+u.AtVec(i)))
	}

	var product mat.VecDense
	product.MulVec(n.w.T(), activated)

	next := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		next.SetVec(i, product.AtVec(i)*inv)
	}
	n.y = next
}

// Output returns the current state of the action node range.
func (n *Network) Output() []float64 {
	out := make([]float64, n.actionEnd-n.actionStart)
	for i := range out {
		out[i] = n.y.AtVec(n.actionStart + i)
	}
	return out
}

// HasNaN reports whether any neuron's state is NaN, the signal a Scenario
// should use to assign a sentinel worst-case fitness rather than let NaN
// silently propagate into ranking.
func (n *Network) HasNaN() bool {
	for i := 0; i < n.y.Len(); i++ {
		if math.IsNaN(n.y.AtVec(i)) {
			return true
		}
	}
	return false
}
