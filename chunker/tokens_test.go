package chunker

import "testing"

func TestTokenCounter_Count(t *testing.T) {
	tc, err := NewTokenCounter()
	if err != nil {
		t.Fatalf("NewTokenCounter: %v", err)
	}

	n, err := tc.Count("")
	if err != nil {
		t.Fatalf("Count(\"\"): %v", err)
	}
	if n != 0 {
		t.Errorf("empty text = %d tokens, want 0", n)
	}

	n, err = tc.Count("Hello, world! This is a test sentence.")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n <= 0 {
		t.Errorf("expected positive token count, got %d", n)
	}

	short, _ := tc.Count("one two")
	long, _ := tc.Count("one two three four five six seven eight")
	if long <= short {
		t.Errorf("longer text should have more tokens: %d vs %d", long, short)
	}
}
