package inequality

// NodeSet is the ordered inequality list of one graph node.
type NodeSet struct {
	Key          string       `json:"key"`
	Inequalities []Inequality `json:"inequalities"`
}

// Entry is one inequality of a node, tagged with whether every node has it.
type Entry struct {
	Inequality
	Shared bool `json:"shared"`
}

// ConsolidatedNode is a node with its tagged entries, in original order.
type ConsolidatedNode struct {
	Key     string  `json:"key"`
	Entries []Entry `json:"entries"`
}

// Consolidated is the result of Consolidate.
type Consolidated struct {
	// Intersection holds the inequalities present in every node, without
	// duplicates, in the order of the first node.
	Intersection []Inequality      `json:"intersection"`
	Nodes        []ConsolidatedNode `json:"nodes"`
}

// Consolidate computes the inequalities shared by all nodes and tags every
// entry. Node order and entry order are kept. An empty input yields an
// empty result.
//
// Consolidate is a pure function.
func Consolidate(sets []NodeSet) Consolidated {
	res := Consolidated{
		Intersection: []Inequality{},
		Nodes:        make([]ConsolidatedNode, 0, len(sets)),
	}
	if len(sets) == 0 {
		return res
	}

	shared := make(map[Inequality]bool)
	for _, ineq := range sets[0].Inequalities {
		if shared[ineq] || !inAll(ineq, sets[1:]) {
			continue
		}
		shared[ineq] = true
		res.Intersection = append(res.Intersection, ineq)
	}

	for _, set := range sets {
		node := ConsolidatedNode{
			Key:     set.Key,
			Entries: make([]Entry, len(set.Inequalities)),
		}
		for i, ineq := range set.Inequalities {
			node.Entries[i] = Entry{Inequality: ineq, Shared: shared[ineq]}
		}
		res.Nodes = append(res.Nodes, node)
	}
	return res
}

func inAll(ineq Inequality, sets []NodeSet) bool {
	for _, set := range sets {
		found := false
		for _, other := range set.Inequalities {
			if other == ineq {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Node returns the consolidated node with the given key.
func (c Consolidated) Node(key string) (ConsolidatedNode, bool) {
	for _, n := range c.Nodes {
		if n.Key == key {
			return n, true
		}
	}
	return ConsolidatedNode{}, false
}
