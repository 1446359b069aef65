package ddvalidate

// compareRuleSections implements spec §4.6's rule-section compatibility
// rule: a rule section cannot be added to a previously-unstructured
// term; within an existing section, required selectors may only loosen
// and banned properties may only shrink.
func compareRuleSections(original, updated *RuleSection) Compat {
	if original == nil && updated == nil {
		return Compat{OK: true}
	}
	if original == nil && updated != nil {
		return invalid("rule section added to a previously unstructured term", "rule", nil, "present")
	}
	if original != nil && updated == nil {
		return Compat{OK: true} // structure requirement lifted: loosening
	}

	if c := compareGrowSelector("rule.required.one", original.Required.One, updated.Required.One); !c.OK {
		return c
	}
	if c := compareGrowSelector("rule.required.oneOrNone", original.Required.OneOrNone, updated.Required.OneOrNone); !c.OK {
		return c
	}
	if c := compareGrowSelector("rule.required.any", original.Required.Any, updated.Required.Any); !c.OK {
		return c
	}
	if c := compareShrinkSelector("rule.required.all", original.Required.All, updated.Required.All); !c.OK {
		return c
	}
	if c := compareOneOrNoneSet(original.Required.OneOrNoneSet, updated.Required.OneOrNoneSet); !c.OK {
		return c
	}
	if c := compareShrinkSelector("rule.banned", original.Banned, updated.Banned); !c.OK {
		return c
	}
	return Compat{OK: true}
}

// compareGrowSelector implements the loosening rule for selectors where
// more candidates means more ways to satisfy the rule (one, oneOrNone,
// any): the updated list must be a superset of the original.
func compareGrowSelector(field string, original, updated []string) Compat {
	updSet := make(map[string]bool, len(updated))
	for _, v := range updated {
		updSet[v] = true
	}
	for _, v := range original {
		if !updSet[v] {
			return invalid(field+" lost a candidate, which tightens the rule", field, original, updated)
		}
	}
	return Compat{OK: true}
}

// compareShrinkSelector implements the loosening rule for selectors
// where fewer members means a looser constraint (all, banned): the
// updated list must be a subset of the original.
func compareShrinkSelector(field string, original, updated []string) Compat {
	origSet := make(map[string]bool, len(original))
	for _, v := range original {
		origSet[v] = true
	}
	for _, v := range updated {
		if !origSet[v] {
			return invalid(field+" gained a member, which tightens the rule", field, original, updated)
		}
	}
	return Compat{OK: true}
}

// compareOneOrNoneSet implements the oneOrNoneSet loosening rule by
// aggregate set size, per spec §4.6's prose: the total number of
// choices offered across all groups may not shrink.
func compareOneOrNoneSet(original, updated [][]string) Compat {
	origTotal, updTotal := 0, 0
	for _, group := range original {
		origTotal += len(group)
	}
	for _, group := range updated {
		updTotal += len(group)
	}
	if updTotal < origTotal {
		return invalid("rule.required.oneOrNoneSet aggregate choice count shrank", "rule.required.oneOrNoneSet", origTotal, updTotal)
	}
	return Compat{OK: true}
}
