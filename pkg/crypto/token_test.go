package crypto

import "testing"

func TestHashToken(t *testing.T) {
	first := HashToken("some.bearer.token")
	second := HashToken("some.bearer.token")

	if first != second {
		t.Error("HashToken must be deterministic")
	}
	if len(first) != 64 {
		t.Errorf("length = %d, want 64 hex characters", len(first))
	}
	if first == "some.bearer.token" {
		t.Error("HashToken must not echo its input")
	}
	if HashToken("another.token") == first {
		t.Error("distinct tokens must hash differently")
	}
}
