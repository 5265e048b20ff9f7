package store

import "strconv"

// Record holds one row's worth of field-name→value data. Values are kept as
// strings: xlsx cells read back as strings, and the HTTP layer coerces
// incoming JSON scalars before they reach the store. Fields absent from a
// record are written as empty cells.
type Record map[string]string

// ID returns the record's id as an integer. ok is false when the id field is
// empty or not parseable; such records are ignored during id allocation.
func (r Record) ID() (int, bool) {
	raw, present := r["id"]
	if !present || raw == "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// IsBlank reports whether every cell of the record is empty. Blank rows are
// filtered out on read.
func (r Record) IsBlank() bool {
	for _, v := range r {
		if v != "" {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
