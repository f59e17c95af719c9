package validation

// Violation is one broken rule on one field. It is user feedback, not a
// program error.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is an ordered list of rule violations.
type Violations []Violation

// Empty reports whether no rule is violated.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// For returns the violation attached to field.
func (v Violations) For(field string) (Violation, bool) {
	for _, violation := range v {
		if violation.Field == field {
			return violation, true
		}
	}
	return Violation{}, false
}

// Filter keeps the violations whose field satisfies keep.
func (v Violations) Filter(keep func(field string) bool) Violations {
	if keep == nil {
		return v
	}
	var out Violations
	for _, violation := range v {
		if keep(violation.Field) {
			out = append(out, violation)
		}
	}
	return out
}

// Messages returns the violation messages in order.
func (v Violations) Messages() []string {
	if len(v) == 0 {
		return nil
	}
	out := make([]string, 0, len(v))
	for _, violation := range v {
		out = append(out, violation.Message)
	}
	return out
}

// ByField groups messages by field name.
func (v Violations) ByField() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	out := make(map[string][]string, len(v))
	for _, violation := range v {
		out[violation.Field] = append(out[violation.Field], violation.Message)
	}
	return out
}
