package utils

import "testing"

func TestStringPtrOrNil(t *testing.T) {
	p := StringPtrOrNil("  hello ")
	if p == nil || *p != "hello" {
		t.Fatalf("expected pointer to 'hello', got %v", p)
	}

	if p := StringPtrOrNil("   "); p != nil {
		t.Fatalf("expected nil for blank input, got %q", *p)
	}
	if p := StringPtrOrNil(""); p != nil {
		t.Fatalf("expected nil for empty input, got %q", *p)
	}
}
