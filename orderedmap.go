package ddvalidate

// OrderedMap is a dict value representation that preserves key insertion
// order, used where a plain Go map's lack of iteration-order guarantee
// would violate spec §4.2's "reconstruct the object with new keys
// preserving insertion order" rule for dict key coercion (DESIGN.md's
// Open Question decision). Callers that need order preservation across a
// dict validation pass should hand the walker an *OrderedMap; a plain
// map[string]any is also accepted, with whatever order Go's map
// iteration happens to produce.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap builds an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set inserts or updates key. A new key is appended to the end of the
// iteration order; updating an existing key keeps its original position.
func (m *OrderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key, if any.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key from the map.
func (m *OrderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.keys)
}

// toPairs normalizes either a *OrderedMap or a map[string]any into an
// ordered slice of key/value pairs for dict validation.
func toPairs(value any) ([]string, map[string]any, bool) {
	switch v := value.(type) {
	case *OrderedMap:
		return append([]string(nil), v.keys...), v.values, true
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		return keys, v, true
	default:
		return nil, nil, false
	}
}
