package store

import "testing"

func TestNextID_EmptyTable(t *testing.T) {
	if got := NextID(nil); got != 1 {
		t.Errorf("expected 1 for empty table, got %d", got)
	}
}

func TestNextID_MaxPlusOne(t *testing.T) {
	records := []Record{
		{"id": "1"},
		{"id": "7"},
		{"id": "3"},
	}
	if got := NextID(records); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestNextID_SkipsMalformedAndEmpty(t *testing.T) {
	records := []Record{
		{"id": "2"},
		{"id": "not-a-number"},
		{"id": ""},
		{"name": "no id at all"},
	}
	if got := NextID(records); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestRecordID(t *testing.T) {
	if _, ok := (Record{"id": "abc"}).ID(); ok {
		t.Error("malformed id should not parse")
	}
	if _, ok := (Record{}).ID(); ok {
		t.Error("missing id should not parse")
	}
	id, ok := (Record{"id": "42"}).ID()
	if !ok || id != 42 {
		t.Errorf("expected 42, got %d (ok=%v)", id, ok)
	}
}

func TestRecordIsBlank(t *testing.T) {
	if !(Record{"a": "", "b": ""}).IsBlank() {
		t.Error("all-empty record should be blank")
	}
	if (Record{"a": "", "b": "x"}).IsBlank() {
		t.Error("record with a value should not be blank")
	}
}
