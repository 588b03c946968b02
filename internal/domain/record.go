package domain

// InputRecord is the raw household snapshot handed to the engine by the
// caller (wizard UI, HTTP facade, config file). It is deliberately
// loosely typed: many concepts have accumulated several field names over
// time (e.g. "currentSavings", "pensionSavings", "currentPensionSavings"
// all mean pension balance) and the resolve package probes the aliases in
// a fixed priority order. The engine treats the record as read-only.
type InputRecord map[string]any

// Clone returns a shallow copy of the record. The dynamic-return
// adjustment hook enriches a copy before calculation so the caller's
// record is never mutated.
func (r InputRecord) Clone() InputRecord {
	out := make(InputRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Has reports whether the record carries a non-nil value for the key.
func (r InputRecord) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Bool reads a boolean field, tolerating absent or mistyped values.
func (r InputRecord) Bool(key string) bool {
	v, ok := r[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// String reads a string field, returning fallback when absent or mistyped.
func (r InputRecord) String(key, fallback string) string {
	v, ok := r[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}
