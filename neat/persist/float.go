// Package persist serializes genomes and populations to YAML, storing every
// floating-point value by its IEEE-754 bit pattern so round-tripping through
// disk never loses a bit to decimal-text rounding.
package persist

import "math"

// Float64 marshals to and from its exact bit pattern as an unsigned 64-bit
// integer, guaranteeing bit-exact round-trip through YAML regardless of the
// decimal-formatting choices a generic float encoder would otherwise make.
type Float64 float64

// MarshalYAML encodes the float as its raw bit pattern.
func (f Float64) MarshalYAML() (interface{}, error) {
	return math.Float64bits(float64(f)), nil
}

// UnmarshalYAML decodes a raw bit pattern back into the exact original
// float.
func (f *Float64) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var bits uint64
	if err := unmarshal(&bits); err != nil {
		return err
	}
	*f = Float64(math.Float64frombits(bits))
	return nil
}
