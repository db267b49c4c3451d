package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"
)

// SyntaxError describes a document that is not valid JSON.
type SyntaxError struct {
	// Offset is the byte offset of the offending input.
	Offset int
	msg    string
}

func (e *SyntaxError) Error() string {
	return e.msg
}

// Parse decodes exactly one JSON document.
//
// The grammar is checked by encoding/json's scanner, which rejects what
// jsonparser lets through: leading zeros, "1." and "1.e3", raw control
// characters in strings and trailing data. The order-preserving jsonparser
// walk then builds the Value. jsonparser refuses lone UTF-16 surrogate
// escapes, so a document it cannot walk is decoded from encoding/json's token
// stream instead, which substitutes U+FFFD.
func Parse(data []byte) (Value, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, newSyntaxError(data, err)
	}

	if v, err := walk(data); err == nil {
		return v, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeToken(dec)
	if err != nil {
		return Value{}, &SyntaxError{
			Offset: clampOffset(int(dec.InputOffset()), len(data)),
			msg:    err.Error(),
		}
	}
	return v, nil
}

func newSyntaxError(data []byte, err error) *SyntaxError {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return &SyntaxError{msg: err.Error()}
	}
	// encoding/json counts the offending byte as read
	offset := int(se.Offset)
	if offset > 0 && offset <= len(data) && se.Error() != "unexpected end of JSON input" {
		offset--
	}
	return &SyntaxError{Offset: clampOffset(offset, len(data)), msg: se.Error()}
}

func clampOffset(offset, n int) int {
	if offset < 0 {
		return 0
	}
	if offset > n {
		return n
	}
	return offset
}

// parseNumber accepts magnitudes beyond float64 as infinities (or zero), the
// way JSON.parse yields Infinity for 1e400.
func parseNumber(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, err
	}
	return Number(f), nil
}

func walk(data []byte) (Value, error) {
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, err
	}
	return decode(raw, typ)
}

func decodeToken(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return parseNumber(t.String())
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			items := []Value{}
			for dec.More() {
				item, err := decodeToken(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, items: items}, nil

		case '{':
			ob := newObjectBuilder(0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				member, err := decodeToken(dec)
				if err != nil {
					return Value{}, err
				}
				ob.set(key, member)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, err
			}
			return ob.value(), nil
		}
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

// MustParse parses s and panics on failure. Intended for tests and literals.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonvalue: MustParse(%q): %v", s, err))
	}
	return v
}

func decode(raw []byte, typ jsonparser.ValueType) (Value, error) {
	switch typ {
	case jsonparser.Null:
		return Null(), nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil

	case jsonparser.Number:
		return parseNumber(string(raw))

	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return Value{}, err
		}
		return String(s), nil

	case jsonparser.Array:
		items := []Value{}
		var walkErr error
		_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
			if walkErr != nil {
				return
			}
			if err != nil {
				walkErr = err
				return
			}
			item, err := decode(value, dataType)
			if err != nil {
				walkErr = err
				return
			}
			items = append(items, item)
		})
		if err != nil {
			return Value{}, err
		}
		if walkErr != nil {
			return Value{}, walkErr
		}
		return Value{kind: KindArray, items: items}, nil

	case jsonparser.Object:
		ob := newObjectBuilder(0)
		err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
			member, err := decode(value, dataType)
			if err != nil {
				return err
			}
			// key may point into a scratch buffer owned by jsonparser
			ob.set(string(key), member)
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return ob.value(), nil
	}

	return Value{}, fmt.Errorf("unsupported JSON token type %s", typ)
}
