package keybind

import (
	"slices"
)

// EntryKind selects which name validation a merge applies.
type EntryKind int

const (
	KindKey EntryKind = iota
	KindAlias
)

func (k EntryKind) validate(name string) (bool, string) {
	switch k {
	case KindAlias:
		return IsValidAliasName(name), "Invalid alias name"
	default:
		return IsValidKeyName(name), "Invalid key name"
	}
}

// ResolveMerge combines an incoming parsed map with an existing persisted
// map under the chosen strategy. It never mutates its inputs: the
// returned map is a fresh value reflecting the strategy's semantics, and
// the caller decides whether to commit it.
//
// Entries whose name fails validation for the given kind are never
// inserted; they are reported in the error list and do not count toward
// any statistic. Incoming entries are processed in name order so error
// reporting is deterministic.
func ResolveMerge[V any](existing, incoming map[string]V, strategy MergeStrategy, kind EntryKind) (map[string]V, MergeStatistics, []MergeError) {
	var stats MergeStatistics
	var errs []MergeError

	result := make(map[string]V, len(existing)+len(incoming))
	if strategy == OverwriteAll {
		stats.Cleared = len(existing)
	} else {
		for name, value := range existing {
			result[name] = value
		}
	}

	names := make([]string, 0, len(incoming))
	for name := range incoming {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		ok, reason := kind.validate(name)
		if !ok {
			errs = append(errs, MergeError{Name: name, Reason: reason})
			continue
		}

		switch strategy {
		case MergeKeep:
			if _, exists := result[name]; exists {
				stats.Skipped++
				continue
			}
			result[name] = incoming[name]
			stats.Imported++
		case MergeOverwrite:
			if _, exists := result[name]; exists {
				stats.Overwritten++
			}
			result[name] = incoming[name]
			stats.Imported++
		case OverwriteAll:
			result[name] = incoming[name]
			stats.Imported++
		}
	}

	return result, stats, errs
}
