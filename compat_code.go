package ddvalidate

// compareCodeSections implements spec §4.6's code-section compatibility
// rule: namespace/local/global identifiers are immutable; the official
// identifiers array may not gain or lose members, except a missing
// local-id is tolerated — the caller is expected to repair it on write,
// the checker itself stays pure and never mutates either term.
func compareCodeSections(original, updated *CodeSection) Compat {
	if original == nil && updated == nil {
		return Compat{OK: true}
	}
	if original == nil || updated == nil {
		return invalid("code section presence may not change", "code", original, updated)
	}

	if original.Namespace != updated.Namespace {
		return invalid("namespace identifier is immutable", "code.ns", original.Namespace, updated.Namespace)
	}
	if original.Local != updated.Local {
		return invalid("local identifier is immutable", "code.lid", original.Local, updated.Local)
	}
	if original.Global != updated.Global {
		return invalid("global identifier is immutable", "code.gid", original.Global, updated.Global)
	}

	origSet := make(map[string]bool, len(original.Official))
	for _, id := range original.Official {
		origSet[id] = true
	}
	updSet := make(map[string]bool, len(updated.Official))
	for _, id := range updated.Official {
		updSet[id] = true
	}

	for id := range origSet {
		if updSet[id] {
			continue
		}
		if id == original.Local {
			continue // repaired on write, not an incompatibility
		}
		return invalid("official identifier removed", "code.official", original.Official, updated.Official)
	}
	for id := range updSet {
		if !origSet[id] {
			return invalid("official identifier added", "code.official", original.Official, updated.Official)
		}
	}
	return Compat{OK: true}
}
