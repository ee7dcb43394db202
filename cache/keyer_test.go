package cache

import (
	"strings"
	"testing"
)

func TestOpKeyer_Deterministic(t *testing.T) {
	keyer := NewOpKeyer()

	params := map[string]any{
		"database_id": "d1",
		"page_size":   100,
		"filter":      map[string]any{"property": "Status", "equals": "Done"},
	}

	// Repeated calls must produce identical keys regardless of map
	// iteration order.
	first, err := keyer.Key("database_query", params)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := keyer.Key("database_query", map[string]any{
			"page_size":   100,
			"filter":      map[string]any{"equals": "Done", "property": "Status"},
			"database_id": "d1",
		})
		if err != nil {
			t.Fatalf("Key failed: %v", err)
		}
		if again != first {
			t.Fatalf("key not deterministic: %q vs %q", again, first)
		}
	}
}

func TestOpKeyer_SortedParams(t *testing.T) {
	keyer := NewOpKeyer()

	key, err := keyer.Key("database_query", map[string]any{
		"start_cursor": "c1",
		"database_id":  "d1",
	})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	want := "database_query:database_id=d1:start_cursor=c1"
	if key != want {
		t.Errorf("Key = %q, want %q", key, want)
	}
}

func TestOpKeyer_OmitsAbsentParams(t *testing.T) {
	keyer := NewOpKeyer()

	full, err := keyer.Key("search", map[string]any{"query": "q"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	withAbsent, err := keyer.Key("search", map[string]any{
		"query":        "q",
		"filter":       nil,
		"start_cursor": "",
	})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	if full != withAbsent {
		t.Errorf("absent params must not change the key: %q vs %q", full, withAbsent)
	}
}

func TestOpKeyer_NoParams(t *testing.T) {
	keyer := NewOpKeyer()

	key, err := keyer.Key("user_list", nil)
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if key != "user_list" {
		t.Errorf("Key = %q, want %q", key, "user_list")
	}
}

func TestOpKeyer_DistinctInputsDistinctKeys(t *testing.T) {
	keyer := NewOpKeyer()

	a, err := keyer.Key("page", map[string]any{"page_id": "a"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	b, err := keyer.Key("page", map[string]any{"page_id": "b"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if a == b {
		t.Errorf("different params produced the same key %q", a)
	}
}

func TestOpKeyer_ParamValueStaysLiteral(t *testing.T) {
	keyer := NewOpKeyer()

	key, err := keyer.Key("database_query", map[string]any{"database_id": "db-123"})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	// Invalidation patterns rely on the ID appearing literally.
	if !strings.Contains(key, "database_id=db-123") {
		t.Errorf("key %q should contain the literal database id", key)
	}
}

func TestOpKeyer_OversizedValueDigested(t *testing.T) {
	keyer := NewOpKeyer()

	big := strings.Repeat("x", 500)
	key, err := keyer.Key("database_query", map[string]any{
		"database_id": "d1",
		"filter":      big,
	})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}

	if strings.Contains(key, big) {
		t.Error("oversized value should be digested, not embedded")
	}
	if !strings.Contains(key, "database_id=d1") {
		t.Error("other params must stay literal when one is digested")
	}
	if err := ValidateKey(key); err != nil {
		t.Errorf("digested key should validate: %v", err)
	}

	// Digest must stay deterministic
	again, err := keyer.Key("database_query", map[string]any{
		"database_id": "d1",
		"filter":      big,
	})
	if err != nil {
		t.Fatalf("Key failed: %v", err)
	}
	if key != again {
		t.Errorf("digested key not deterministic: %q vs %q", key, again)
	}
}

func TestOpKeyer_InvalidOp(t *testing.T) {
	keyer := NewOpKeyer()

	for _, op := range []string{"", "  ", "bad\nop"} {
		if _, err := keyer.Key(op, nil); err == nil {
			t.Errorf("Key(%q) should fail", op)
		}
	}
}

func TestValidateKey(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"simple key", "page:id=abc", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"newline", "page\nid", true},
		{"carriage return", "page\rid", true},
		{"max length", strings.Repeat("k", MaxKeyLength), false},
		{"too long", strings.Repeat("k", MaxKeyLength+1), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateKey(tc.key)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tc.key, err, tc.wantErr)
			}
		})
	}
}
