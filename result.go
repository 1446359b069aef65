package ddvalidate

import "github.com/kaptinlin/go-i18n"

// Change records one coercion the resolver applied in place (spec §4.4/
// §4.5), keyed for idempotency by changelog.go.
type Change struct {
	Field      string `json:"field"`
	Original   any    `json:"original"`
	Resolved   any    `json:"resolved"`
}

// Status is the numeric-code-plus-message outcome of validating a single
// value (spec §6, "status report").
type Status struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// NewStatus builds a Status for code, rendering its default English
// message eagerly (mirrors the teacher's validate-once/localize-many-times
// pattern: Localize can re-render with a different bundle later).
func NewStatus(code Code, params map[string]any) Status {
	return Status{
		Code:    code,
		Message: replace(defaultMessages[code.MessageKey()], params),
		Params:  params,
	}
}

// Localize re-renders s's message using localizer, leaving s.Code
// unchanged. A nil localizer returns s.Message as-is.
func (s Status) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return s.Message
	}
	return localizer.Get(s.Code.MessageKey(), i18n.Vars(s.Params))
}

// Report is the outcome of validating one value against one descriptor
// (spec §6, "status report"): a status plus optional context the caller
// can use to render a user-visible failure surface.
type Report struct {
	Status     Status `json:"status"`
	Descriptor string `json:"descriptor,omitempty"`
	Value      any    `json:"value,omitempty"`
	Changes    []Change `json:"changes,omitempty"`
	// Context carries side-channel fields particular to the failing
	// branch: regex string, enclosing section name, enum type, and so on
	// (spec §6, "optional side-channel fields for context").
	Context map[string]any `json:"context,omitempty"`
}

// NewReport builds an idle (OK) report for descriptor.
func NewReport(descriptor string) *Report {
	return &Report{
		Status:     NewStatus(OK, nil),
		Descriptor: descriptor,
	}
}

// SetStatus replaces the report's status. Per spec §4.5, a non-idle status
// never silently replaces an existing error with a lower-severity one: a
// caller observing an established error status must not downgrade it by
// calling SetStatus again with a warning or OK code.
func (r *Report) SetStatus(code Code, params map[string]any) *Report {
	if r.Status.Code.Severity() == SeverityError && code.Severity() != SeverityError {
		return r
	}
	r.Status = NewStatus(code, params)
	return r
}

// AddChange appends a coercion entry and, if the report is currently idle,
// promotes its status to ModifiedValue.
func (r *Report) AddChange(field string, original, resolved any) *Report {
	r.Changes = append(r.Changes, Change{Field: field, Original: original, Resolved: resolved})
	if r.Status.Code == OK {
		r.Status = NewStatus(ModifiedValue, map[string]any{"original": original, "resolved": resolved})
	}
	return r
}

// WithContext attaches a side-channel field to the report.
func (r *Report) WithContext(key string, value any) *Report {
	if r.Context == nil {
		r.Context = make(map[string]any)
	}
	r.Context[key] = value
	return r
}

// ReturnCode implements spec §4.2's return-code mapping for a single
// report: −1 on error, 1 on a warning-class code (accepted with
// coercion), 0 otherwise.
func (r *Report) ReturnCode() int {
	switch r.Status.Code.Severity() {
	case SeverityError:
		return -1
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Localize returns r with its status message re-rendered through
// localizer; r itself is left untouched.
func (r *Report) Localize(localizer *i18n.Localizer) Report {
	cp := *r
	cp.Status.Message = r.Status.Localize(localizer)
	return cp
}

// BatchReport is an ordered sequence of per-index Reports plus aggregate
// counters (spec §6, "batch report").
type BatchReport struct {
	Reports  []*Report `json:"reports"`
	Valid    int       `json:"valid"`
	Warnings int       `json:"warnings"`
	Errors   int       `json:"errors"`
	// RunID correlates a batch with external logs; additive, not part of
	// any spec invariant.
	RunID string `json:"runId,omitempty"`
}

// NewBatchReport builds an empty batch report with capacity n.
func NewBatchReport(n int) *BatchReport {
	return &BatchReport{Reports: make([]*Report, 0, n)}
}

// Set installs report at index, replacing anything previously there and
// recomputing the aggregate counters. Per spec §4.5, "a non-idle status
// replaces any prior idle/warning status at the same index, including its
// coercion log" — but never the reverse (see Report.SetStatus).
func (b *BatchReport) Set(index int, report *Report) {
	for len(b.Reports) <= index {
		b.Reports = append(b.Reports, nil)
	}
	prior := b.Reports[index]
	if prior != nil && prior.Status.Code.Severity() == SeverityError && report.Status.Code.Severity() != SeverityError {
		return
	}
	b.Reports[index] = report
	b.recount()
}

// Append adds report at the next free index.
func (b *BatchReport) Append(report *Report) {
	b.Reports = append(b.Reports, report)
	b.recount()
}

func (b *BatchReport) recount() {
	b.Valid, b.Warnings, b.Errors = 0, 0, 0
	for _, r := range b.Reports {
		if r == nil {
			continue
		}
		switch r.Status.Code.Severity() {
		case SeverityError:
			b.Errors++
		case SeverityWarning:
			b.Warnings++
		default:
			b.Valid++
		}
	}
}

// ReturnCode implements spec §6's batch return-code mapping: −1 if any
// index has an error-class code, 1 if any index has a warning-class
// (ModifiedValue) code and none have errors, 0 otherwise.
func (b *BatchReport) ReturnCode() int {
	if b.Errors > 0 {
		return -1
	}
	if b.Warnings > 0 {
		return 1
	}
	return 0
}

// Localize returns a copy of b with every report's message re-rendered
// through localizer.
func (b *BatchReport) Localize(localizer *i18n.Localizer) *BatchReport {
	cp := &BatchReport{
		Valid:    b.Valid,
		Warnings: b.Warnings,
		Errors:   b.Errors,
		RunID:    b.RunID,
		Reports:  make([]*Report, len(b.Reports)),
	}
	for i, r := range b.Reports {
		if r == nil {
			continue
		}
		localized := r.Localize(localizer)
		cp.Reports[i] = &localized
	}
	return cp
}
