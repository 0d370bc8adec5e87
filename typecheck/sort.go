package typecheck

import (
	"github.com/samber/lo"

	"github.com/depc-lang/depc/ast"
	"github.com/depc-lang/depc/errors"
	"github.com/depc-lang/depc/symbols"
)

// Sort orders the unit's top levels so that every declaration comes
// after the declarations its signature references. Bodies do not count:
// they are checked after all signatures are known, so mutual recursion
// through bodies never forces an ordering. Ties break by original
// declaration order, making the result deterministic.
//
// A cycle among signatures is unresolvable and reported with the
// participating declaration names.
func Sort(unit ast.TranslationUnit) ([]int, error) {
	n := len(unit.TopLevels)

	byName := make(map[symbols.Symbol]int, n)
	for i, top := range unit.TopLevels {
		byName[top.TopLevelName()] = i
	}

	// deps[i] lists the declarations i's signature references.
	deps := make([][]int, n)
	for i, top := range unit.TopLevels {
		f := top.(ast.Func)
		for name := range ast.FreeVars(f.Signature()) {
			if j, ok := byName[name]; ok && j != i {
				deps[i] = append(deps[i], j)
			}
		}
	}

	order := make([]int, 0, n)
	done := make([]bool, n)
	for len(order) < n {
		progressed := false
		for i := 0; i < n; i++ {
			if done[i] || !lo.EveryBy(deps[i], func(j int) bool { return done[j] }) {
				continue
			}
			done[i] = true
			order = append(order, i)
			progressed = true
		}
		if !progressed {
			return nil, errors.CyclicSignatureDependency{
				Participants: cycleParticipants(unit, deps, done),
			}
		}
	}
	return order, nil
}

// cycleParticipants narrows the unresolved declarations down to the
// ones actually on a cycle: declarations that merely depend on the
// cycle are stripped until every remaining one has a remaining
// dependent.
func cycleParticipants(unit ast.TranslationUnit, deps [][]int, done []bool) []symbols.Symbol {
	remaining := make([]bool, len(done))
	for i := range done {
		remaining[i] = !done[i]
	}

	for {
		stripped := false
		for i := range remaining {
			if !remaining[i] {
				continue
			}
			depended := false
			for j := range remaining {
				if remaining[j] && j != i && lo.Contains(deps[j], i) {
					depended = true
					break
				}
			}
			if !depended {
				remaining[i] = false
				stripped = true
			}
		}
		if !stripped {
			break
		}
	}

	var participants []symbols.Symbol
	for i, r := range remaining {
		if r {
			participants = append(participants, unit.TopLevels[i].TopLevelName())
		}
	}
	return participants
}
