package genetics

// Genome is an index-based CTRNN genotype: a fixed block of sensory nodes,
// a fixed block of action nodes, a single trailing static (bias) node, and
// zero or more internal nodes grown by bisection mutation, wired together
// by a flat list of connection genes.
type Genome struct {
	Sensory     int          `yaml:"sensory"`
	Action      int          `yaml:"action"`
	Nodes       []NodeKind   `yaml:"nodes"`
	Connections []Connection `yaml:"connections"`
}

// New builds an empty genome with sensory+action+1 nodes (the trailing node
// is the static bias unit) and no connections, alongside the innovation id
// one past the last that a fully-connected sensory/bias -> action layer
// would use: (sensory+1)*action.
func New(sensory, action int) (*Genome, int) {
	nodes := make([]NodeKind, 0, sensory+action+1)
	for i := 0; i < sensory; i++ {
		nodes = append(nodes, Sensory)
	}
	for i := 0; i < action; i++ {
		nodes = append(nodes, Action)
	}
	nodes = append(nodes, Static)

	return &Genome{
		Sensory:     sensory,
		Action:      action,
		Nodes:       nodes,
		Connections: make([]Connection, 0),
	}, (sensory + 1) * action
}

// SensoryRange returns the half-open [start, end) index range of sensory
// nodes.
func (g *Genome) SensoryRange() (int, int) {
	return 0, g.Sensory
}

// ActionRange returns the half-open [start, end) index range of action
// nodes.
func (g *Genome) ActionRange() (int, int) {
	return g.Sensory, g.Sensory + g.Action
}

// StaticIndex returns the index of the trailing bias node.
func (g *Genome) StaticIndex() int {
	return g.Sensory + g.Action
}

// Complexity is the sum of node and enabled-connection counts, a cheap
// proxy for phenotype size used by statistics reporting.
func (g *Genome) Complexity() int {
	enabled := 0
	for _, c := range g.Connections {
		if c.Enabled {
			enabled++
		}
	}
	return len(g.Nodes) + enabled
}

// Clone returns a deep copy safe to mutate independently of g.
func (g *Genome) Clone() *Genome {
	nodes := make([]NodeKind, len(g.Nodes))
	copy(nodes, g.Nodes)
	connections := make([]Connection, len(g.Connections))
	copy(connections, g.Connections)
	return &Genome{
		Sensory:     g.Sensory,
		Action:      g.Action,
		Nodes:       nodes,
		Connections: connections,
	}
}
