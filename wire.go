package tariffconv

// Field is one key/value pair of an encoded object.
type Field struct {
	Key   string
	Value any
}

// Fields is the ordered object node of the wire tree produced by
// Schema.Encode. Keys keep schema declaration order so every back end emits
// them the same way.
//
// The remaining wire tree nodes are []any, string, bool and the Go integer
// types.
type Fields []Field

// Get returns the value stored under key.
func (fs Fields) Get(key string) (any, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (fs Fields) Keys() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Key
	}
	return out
}
