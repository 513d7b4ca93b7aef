package ir

// GC performs the mark-and-sweep collection described in spec.md §4.1.4:
// mark every node deep-reachable (structural children plus ref edges and
// attached types) from roots, then sweep every node the arena has ever
// allocated that wasn't touched by the mark pass. roots is normally the set
// of live top-level units (entity/arch/package/pbody/elab) a session still
// cares about.
func (a *Arena) GC(roots []*Node) (marked, freed int) {
	epoch := a.nextEpoch()
	for _, r := range roots {
		markDeep(r, epoch)
	}

	for i, n := range a.nodes {
		if n == nil {
			continue
		}
		if n.epoch == epoch {
			marked++
			continue
		}
		freed++
		a.nodes[i] = nil
	}
	return marked, freed
}

func markDeep(n *Node, epoch uint64) {
	if n == nil || n.epoch == epoch {
		return
	}
	n.epoch = epoch
	for _, c := range n.children(true, nil) {
		markDeep(c, epoch)
	}
}
