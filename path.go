package main

// Path is an ordered route from source to destination
type Path struct {
	Cells []Cell  `json:"cells"`
	Steps int     `json:"steps"` // number of moves, len(Cells)-1
	Cost  float64 `json:"cost"`  // Euclidean length
}

// ExtractPath walks predecessor links back from the ledger's destination and
// returns them in source-to-destination order. The ledger is only read, so
// extraction can be repeated. Anything but a Found outcome yields
// ErrUnreachable.
func ExtractPath(l *Ledger, outcome Outcome) (Path, error) {
	if outcome != Found {
		return Path{}, ErrUnreachable
	}

	dst := l.Record(l.destination)
	n := 0
	for rec := dst; rec != nil; rec = rec.From {
		n++
	}

	cells := make([]Cell, n)
	i := n - 1
	for rec := dst; rec != nil; rec = rec.From {
		cells[i] = rec.Cell
		i--
	}

	return Path{Cells: cells, Steps: n - 1, Cost: dst.Cost}, nil
}

// Contains reports whether c lies on the path
func (p Path) Contains(c Cell) bool {
	for _, pc := range p.Cells {
		if pc == c {
			return true
		}
	}
	return false
}
