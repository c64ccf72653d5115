package volunteer

import "slices"

// Diff compara o conjunto atual de áreas com o desejado. Aplicar as duas
// listas produz o mesmo estado final que apagar tudo e reinserir.
func Diff(current, desired []uint) (toRemove, toAdd []uint) {
	want := make(map[uint]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[uint]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for id := range want {
		if _, ok := have[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	slices.Sort(toRemove)
	slices.Sort(toAdd)
	return toRemove, toAdd
}

// Dedup remove ids repetidos e zeros, mantendo a ordem.
func Dedup(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
