package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ValueKind is the discriminant of Value.
type ValueKind int

const (
	KindNone ValueKind = iota
	KindString
	KindStringList
	KindBoolean
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStringList:
		return "string list"
	case KindBoolean:
		return "boolean"
	default:
		return "none"
	}
}

// Value holds either a string, a list of strings or a boolean. It is the
// stored form of content field values and of free form answers.
type Value struct {
	kind ValueKind
	str  string
	list []string
	b    bool
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }
func ListValue(items ...string) Value { return Value{kind: KindStringList, list: append([]string{}, items...)} }
func BoolValue(b bool) Value { return Value{kind: KindBoolean, b: b} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsZero() bool { return v.kind == KindNone }
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }
func (v Value) List() ([]string, bool) { return v.list, v.kind == KindStringList }
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBoolean }

// Text renders the value for display in emails.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindStringList:
		return strings.Join(v.list, ", ")
	case KindBoolean:
		if v.b {
			return "Yes"
		}
		return "No"
	default:
		return ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindStringList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindBoolean:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string, an array of strings, a boolean or null.
// A number is kept as its literal text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("value: list items must be strings")
		}
		if items == nil {
			items = []string{}
		}
		*v = Value{kind: KindStringList, list: items}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case '{':
		return fmt.Errorf("value: objects are not supported")
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("value: unsupported literal %s", string(data))
		}
		*v = StringValue(n.String())
	}
	return nil
}

// DecodeAnswer decodes a free form answer. Any JSON value is accepted:
// list items that are not strings become their literal text and any other
// non string, non boolean value is kept as its compact JSON text.
func DecodeAnswer(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Value{}, nil
	}
	switch data[0] {
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return Value{}, err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			text, err := literalText(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, text)
		}
		return Value{kind: KindStringList, list: items}, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	default:
		text, err := literalText(data)
		if err != nil {
			return Value{}, err
		}
		return StringValue(text), nil
	}
}

// literalText renders a JSON value as text: strings unquoted, everything
// else compacted.
func literalText(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		return s, err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", fmt.Errorf("value: invalid literal %s", string(data))
	}
	return buf.String(), nil
}

func (v Value) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.kind {
	case KindString:
		return bson.MarshalValue(v.str)
	case KindStringList:
		list := v.list
		if list == nil {
			list = []string{}
		}
		return bson.MarshalValue(list)
	case KindBoolean:
		return bson.MarshalValue(v.b)
	default:
		return bson.TypeNull, nil, nil
	}
}

func (v *Value) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*v = Value{}
	case bson.TypeString:
		*v = StringValue(raw.StringValue())
	case bson.TypeBoolean:
		*v = BoolValue(raw.Boolean())
	case bson.TypeArray:
		var items []string
		if err := raw.Unmarshal(&items); err != nil {
			return fmt.Errorf("value: decode list: %w", err)
		}
		if items == nil {
			items = []string{}
		}
		*v = Value{kind: KindStringList, list: items}
	case bson.TypeInt32:
		// Old documents may carry numbers.
		*v = StringValue(strconv.FormatInt(int64(raw.Int32()), 10))
	case bson.TypeInt64:
		*v = StringValue(strconv.FormatInt(raw.Int64(), 10))
	case bson.TypeDouble:
		*v = StringValue(strconv.FormatFloat(raw.Double(), 'f', -1, 64))
	default:
		return fmt.Errorf("value: unsupported bson type %s", t)
	}
	return nil
}
