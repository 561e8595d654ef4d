package entropy

// LiteralStringTable is the append-only per-file table of raw string
// literals a StringCache miss falls back to when the string is not in the
// global dictionary either: every distinct string gets a new index the first time
// it's appended, and the table is serialized once, in insertion order,
// alongside the entropy-coded symbol stream.
type LiteralStringTable struct {
	byStr []string
	index map[string]int
}

// NewLiteralStringTable returns an empty table.
func NewLiteralStringTable() *LiteralStringTable {
	return &LiteralStringTable{index: make(map[string]int)}
}

// Append records str if it is not already present and returns its index
// either way.
func (t *LiteralStringTable) Append(str string) int {
	if idx, ok := t.index[str]; ok {
		return idx
	}
	idx := len(t.byStr)
	t.byStr = append(t.byStr, str)
	t.index[str] = idx
	return idx
}

// Len returns the number of distinct strings recorded.
func (t *LiteralStringTable) Len() int { return len(t.byStr) }

// Strings returns the table contents in insertion order.
func (t *LiteralStringTable) Strings() []string {
	return append([]string(nil), t.byStr...)
}

// EncodedSize returns the byte length EncodedData would produce: for each
// string, its WTF-8 byte length plus the varuint encoding of that length,
// plus one terminator byte for the whole table.
func (t *LiteralStringTable) EncodedSize() (int, error) {
	total := 1 // terminator
	for _, s := range t.byStr {
		wtf8 := EncodeWTF8(StringToUTF16(s))
		n, err := VarUintSize(uint64(len(wtf8)))
		if err != nil {
			return 0, err
		}
		total += n + len(wtf8)
	}
	return total, nil
}

// literalTableTerminator is the single byte EncodedData appends after the
// last entry. 0xFF is also a valid first byte of a varuint length prefix
// (one with the continuation bit set), so the terminator is identified by
// being the final byte of the encoded table, not by its value.
const literalTableTerminator = 0xFF

// EncodedData serializes the table as a length-prefixed sequence of WTF-8
// byte strings, each length a varuint, followed by a single terminator
// byte.
func (t *LiteralStringTable) EncodedData() ([]byte, error) {
	var out []byte
	for _, s := range t.byStr {
		wtf8 := EncodeWTF8(StringToUTF16(s))
		lenBytes, err := EncodeVarUint(uint64(len(wtf8)))
		if err != nil {
			return nil, err
		}
		out = append(out, lenBytes...)
		out = append(out, wtf8...)
	}
	out = append(out, literalTableTerminator)
	return out, nil
}
