package genetics

// NodeKind distinguishes the four roles a genome's nodes can play in the
// compiled CTRNN: Sensory and Action nodes are fixed by the problem's
// input/output arity, Static is the single always-on bias unit appended to
// every genome, and Internal nodes are grown by bisection mutation.
type NodeKind byte

const (
	Sensory NodeKind = iota
	Action
	Internal
	Static
)

// String renders the node kind for logging and YAML persistence.
func (k NodeKind) String() string {
	switch k {
	case Sensory:
		return "sensory"
	case Action:
		return "action"
	case Internal:
		return "internal"
	case Static:
		return "static"
	default:
		return "unknown"
	}
}

// MarshalYAML encodes a NodeKind as its string name.
func (k NodeKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

// UnmarshalYAML decodes a NodeKind from its string name.
func (k *NodeKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "sensory":
		*k = Sensory
	case "action":
		*k = Action
	case "internal":
		*k = Internal
	case "static":
		*k = Static
	default:
		*k = Internal
	}
	return nil
}
