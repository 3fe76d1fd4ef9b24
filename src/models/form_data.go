package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type FormEntry struct {
	Key   string
	Value Value
}

// FormData is a field id to answer mapping that remembers the order in
// which the answers were submitted.
type FormData []FormEntry

// Values returns the answers in submission order.
func (fd FormData) Values() []Value {
	out := make([]Value, 0, len(fd))
	for _, e := range fd {
		out = append(out, e.Value)
	}
	return out
}

func (fd FormData) Get(key string) (Value, bool) {
	for _, e := range fd {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

func (fd *FormData) set(key string, v Value) {
	for i := range *fd {
		if (*fd)[i].Key == key {
			(*fd)[i].Value = v
			return
		}
	}
	*fd = append(*fd, FormEntry{Key: key, Value: v})
}

func (fd FormData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range fd {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (fd *FormData) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*fd = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("formData must be an object")
	}
	out := FormData{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("formData: invalid key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		v, err := DecodeAnswer(raw)
		if err != nil {
			return fmt.Errorf("formData[%s]: %w", key, err)
		}
		out.set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*fd = out
	return nil
}

func (fd FormData) MarshalBSONValue() (bsontype.Type, []byte, error) {
	doc := make(bson.D, 0, len(fd))
	for _, e := range fd {
		doc = append(doc, bson.E{Key: e.Key, Value: e.Value})
	}
	return bson.MarshalValue(doc)
}

func (fd *FormData) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull || t == bson.TypeUndefined {
		*fd = nil
		return nil
	}
	if t != bson.TypeEmbeddedDocument {
		return fmt.Errorf("formData: unexpected bson type %s", t)
	}
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}
	out := make(FormData, 0, len(elems))
	for _, el := range elems {
		rv := el.Value()
		var v Value
		if err := v.UnmarshalBSONValue(rv.Type, rv.Value); err != nil {
			return fmt.Errorf("formData[%s]: %w", el.Key(), err)
		}
		out = append(out, FormEntry{Key: el.Key(), Value: v})
	}
	*fd = out
	return nil
}
