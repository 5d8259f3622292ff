package sanity

import "testing"

func TestDuplicateKeys_NoDup(t *testing.T) {
	js := []byte(`{"a":1,"b":{"a":2},"c":[{"a":1},{"a":2}]}`)
	iss, err := DuplicateKeys(js, 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 0 {
		t.Fatalf("expected 0 issues, got %d: %v", len(iss), iss)
	}
}

func TestDuplicateKeys_WithDup(t *testing.T) {
	js := []byte(`{"a":1,"a":2}`)
	iss, err := DuplicateKeys(js, 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 {
		t.Fatalf("expected one duplicate_key issue, got %v", iss)
	}
	if iss[0].Code != CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got %s at %s", iss[0].Code, iss[0].Path)
	}
}

func TestDuplicateKeys_NestedPath(t *testing.T) {
	js := []byte(`{"body":[{"_key":"x"},{"_key":"y","text":"a","text":"b"}]}`)
	iss, err := DuplicateKeys(js, 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(iss) != 1 || iss[0].Path != "/body/1/text" {
		t.Fatalf("expected duplicate at /body/1/text, got %v", iss)
	}
}

func TestDuplicateKeys_MaxIssues(t *testing.T) {
	js := []byte(`{"a":1,"a":2,"b":1,"b":2}`)
	iss, _ := DuplicateKeys(js, 1)
	if len(iss) != 1 {
		t.Fatalf("expected truncation at 1, got %v", iss)
	}
}

func TestDuplicateKeys_Malformed(t *testing.T) {
	_, err := DuplicateKeys([]byte(`{"a":`), 0)
	if err == nil {
		t.Fatalf("expected parse error")
	}
}
