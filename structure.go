package ddvalidate

import "context"

// evaluateRule implements spec §4.3's selector family against the set of
// property names present in an object value. A candidate passes only if
// every selector it declares passes.
func evaluateRule(rule *RuleSection, present map[string]bool) bool {
	if rule == nil {
		return true
	}
	r := rule.Required

	if len(r.One) > 0 {
		count := 0
		for _, p := range r.One {
			if present[p] {
				count++
			}
		}
		if count != 1 {
			return false
		}
	}
	if len(r.OneOrNone) > 0 {
		count := 0
		for _, p := range r.OneOrNone {
			if present[p] {
				count++
			}
		}
		if count > 1 {
			return false
		}
	}
	if len(r.Any) > 0 {
		count := 0
		for _, p := range r.Any {
			if present[p] {
				count++
			}
		}
		if count == 0 {
			return false
		}
	}
	for _, set := range r.OneOrNoneSet {
		count := 0
		for _, p := range set {
			if present[p] {
				count++
			}
		}
		if count > 1 {
			return false
		}
	}
	for _, p := range r.All {
		if !present[p] {
			return false
		}
	}
	for _, p := range rule.Banned {
		if present[p] {
			return false
		}
	}
	return true
}

// admitStructure implements spec §4.3's candidate loop: the object
// admits if at least one candidate structure's rule section passes.
// Candidates are tried in order (first-match-wins, per DESIGN.md's
// grounding on the teacher's oneOf.go); failed candidates never write to
// the report. A candidate without a rule section is dictionary
// corruption, not an ordinary mismatch.
func (v *Validator) admitStructure(ctx context.Context, candidates []string, present map[string]bool, opts Options) (*Term, error) {
	for _, candidateKey := range candidates {
		term, err := v.Cache.Lookup(ctx, candidateKey, opts.lookupOpts()...)
		if err != nil {
			return nil, err
		}
		if !term.IsStructureDefinition() {
			return nil, ErrNotAStructureDefinition
		}
		if evaluateRule(term.Rule, present) {
			return term, nil
		}
	}
	return nil, nil
}

// validateObjectAgainstCandidates implements the full spec §4.3 pass: pick
// an admitting candidate, then recurse every property of the value. An
// object with no admitting candidate reports INVALID_OBJECT_STRUCTURE
// carrying the candidate structure keys under the "candidates" context
// field; the descriptor's data section is not attached to the report.
func (v *Validator) validateObjectAgainstCandidates(ctx context.Context, candidates []string, value map[string]any, report *Report, opts Options, depth int) error {
	if depth > maxRecursionDepth {
		return ErrMaxRecursionDepth
	}
	present := make(map[string]bool, len(value))
	for k := range value {
		present[k] = true
	}

	admitted, err := v.admitStructure(ctx, candidates, present, opts)
	if err != nil {
		return err
	}
	if admitted == nil {
		report.SetStatus(InvalidObjectStruct, nil).WithContext("candidates", candidates)
		return nil
	}

	for property, propValue := range value {
		term, err := v.Cache.Lookup(ctx, property, opts.lookupOpts()...)
		if err != nil {
			if err == ErrTermNotFound {
				if opts.ExpectTerms {
					report.SetStatus(UnknownProperty, map[string]any{"property": property})
					return nil
				}
				continue
			}
			return err
		}
		if !term.IsDescriptor() {
			report.SetStatus(PropertyNotDescriptor, map[string]any{"property": property})
			return nil
		}
		local := propValue
		if err := v.walkDataSection(ctx, term.Data, &local, report, property, opts, depth+1); err != nil {
			return err
		}
		if report.Status.Code.Severity() == SeverityError {
			return nil
		}
		value[property] = local
	}
	return nil
}
