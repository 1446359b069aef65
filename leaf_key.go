package ddvalidate

import "context"

// leafKey implements spec §4.2's key leaf: string check, empty/default-
// namespace handling, key-regex check, then optional kind-qualifier
// admission against a resolved term.
func (v *Validator) leafKey(ctx context.Context, spec *ScalarSpec, value *any, report *Report, descriptorKey string, opts Options) error {
	s, ok := (*value).(string)
	if !ok {
		report.SetStatus(NotAScalar, map[string]any{"type": getDataType(*value)})
		return nil
	}

	if s == "" {
		if !opts.AllowDefaultNamespace {
			report.SetStatus(EmptyKey, nil)
			return nil
		}
		if opts.NamespaceDescriptor != "" && descriptorKey == opts.NamespaceDescriptor {
			return nil
		}
		report.SetStatus(NoReferenceDefaultNamespace, nil)
		return nil
	}
	if s == DefaultNamespaceKey {
		report.SetStatus(NoRefDefaultNamespaceKey, nil)
		return nil
	}
	if !CheckKey(s) {
		report.SetStatus(BadKeyValue, map[string]any{"value": s})
		return nil
	}

	if len(spec.Kind) == 0 {
		return nil
	}

	term, err := v.Cache.Lookup(ctx, s, opts.lookupOpts()...)
	if err != nil {
		if err == ErrTermNotFound {
			report.SetStatus(ValueNotTerm, map[string]any{"value": s})
			return nil
		}
		return err
	}

	var lastMismatch Code
	for _, qualifier := range spec.Kind {
		switch qualifier {
		case KindAnyTerm:
			return nil
		case KindAnyEnum:
			if term.IsEnumElement() {
				return nil
			}
			lastMismatch = NotAnEnum
		case KindAnyDescriptor:
			if term.IsDescriptor() {
				return nil
			}
			lastMismatch = UnknownDescriptor
		case KindAnyStructure:
			if term.IsStructureDefinition() {
				return nil
			}
			lastMismatch = NotAStructureDefinition
		default:
			return ErrUnknownKindQualifier
		}
	}
	report.SetStatus(lastMismatch, map[string]any{"key": s})
	return nil
}
