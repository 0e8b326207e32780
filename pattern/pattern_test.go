package pattern

import "testing"

func TestMatch(t *testing.T) {
	ok, err := Match(`^ab+c$`, "abbbc")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected match")
	}

	ok, err = Match(`^ab+c$`, "ac")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no match")
	}
}

func TestMatchInvalidPattern(t *testing.T) {
	if _, err := Match(`(unclosed`, "text"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestMatchCached(t *testing.T) {
	// Second call goes through the cache and must agree with the first.
	for i := 0; i < 2; i++ {
		ok, err := Match(`^\d{3}$`, "123")
		if err != nil || !ok {
			t.Fatalf("iteration %d: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	valid := []string{"auth", "_db", "Cat2", "a_b_c"}
	for _, s := range valid {
		if !IsIdentifier(s) {
			t.Errorf("IsIdentifier(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "2fast", "has space", "dash-ed", "dot.ted"}
	for _, s := range invalid {
		if IsIdentifier(s) {
			t.Errorf("IsIdentifier(%q) = true, want false", s)
		}
	}
}
