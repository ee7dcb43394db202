package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// maxValueLength bounds how much of one parameter value appears
// literally in a key. Longer values (large query filters) are replaced
// by a digest so keys stay bounded while the other parameters remain
// matchable by invalidation patterns.
const maxValueLength = 64

// Keyer generates deterministic cache keys from an operation tag and
// its parameters.
//
// Contract:
//   - Determinism: equal logical requests must produce identical keys,
//     regardless of map iteration order.
//   - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from an operation tag and parameters.
	Key(op string, params map[string]any) (string, error)
}

// OpKeyer generates readable canonical keys.
//
// Format: <op>:<k1>=<v1>:<k2>=<v2>... with parameter names sorted and
// nil or empty parameters omitted. Values stay literal so a write can
// invalidate related reads with a substring pattern (for example every
// database_query key carrying database_id=X).
type OpKeyer struct{}

// NewOpKeyer creates a new operation keyer.
func NewOpKeyer() *OpKeyer {
	return &OpKeyer{}
}

// Key generates a deterministic cache key.
func (k *OpKeyer) Key(op string, params map[string]any) (string, error) {
	if err := ValidateKey(op); err != nil {
		return "", fmt.Errorf("cache: invalid operation tag %q: %w", op, err)
	}

	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	key := op
	for _, name := range names {
		encoded, err := encodeValue(params[name])
		if err != nil {
			return "", fmt.Errorf("cache: failed to encode parameter %q: %w", name, err)
		}
		key += ":" + name + "=" + encoded
	}

	return key, nil
}

// encodeValue produces a deterministic string form of one parameter.
// Strings pass through untouched; everything else is canonical JSON.
// Oversized encodings collapse to a SHA-256 digest prefix.
func encodeValue(v any) (string, error) {
	var encoded string
	if s, ok := v.(string); ok {
		encoded = s
	} else {
		canonical, err := canonicalize(v)
		if err != nil {
			return "", err
		}
		encoded = string(canonical)
	}

	if len(encoded) > maxValueLength {
		sum := sha256.Sum256([]byte(encoded))
		encoded = hex.EncodeToString(sum[:8])
	}
	return encoded, nil
}

// canonicalize produces a deterministic JSON representation of the
// input. Maps are sorted by key to ensure consistent ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// Ensure OpKeyer implements Keyer
var _ Keyer = (*OpKeyer)(nil)
