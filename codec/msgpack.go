package codec

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	datacls "github.com/reoring/datacls"
)

// MsgPack returns the MessagePack codec backed by vmihailenco/msgpack.
// Integers decode as int64 and floats as float64.
func MsgPack() Codec { return msgpackCodec{} }

type msgpackCodec struct{}

func (msgpackCodec) Name() string { return "msgpack" }

func (msgpackCodec) Marshal(r datacls.Record) ([]byte, error) {
	m, err := mapping(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := encodeOrdered(enc, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeOrdered(enc *msgpack.Encoder, m datacls.OrderedMap) error {
	if err := enc.EncodeMapLen(m.Len()); err != nil {
		return err
	}
	for k, v := range m.All() {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		if err := encodeValue(enc, v); err != nil {
			return fmt.Errorf("codec: encoding %q: %w", k, err)
		}
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, v any) error {
	switch t := v.(type) {
	case datacls.OrderedMap:
		return encodeOrdered(enc, t)
	case []any:
		if err := enc.EncodeArrayLen(len(t)); err != nil {
			return err
		}
		for _, e := range t {
			if err := encodeValue(enc, e); err != nil {
				return err
			}
		}
		return nil
	}
	return enc.Encode(v)
}

func (msgpackCodec) Unmarshal(t *datacls.Type, data []byte) (*datacls.Instance, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, datacls.Issues{datacls.IssueAt("/", datacls.CodeInvalidType, "expected map, got nil")}
	}
	m := datacls.NewOrderedMap(n)
	for i := 0; i < n; i++ {
		k, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return nil, fmt.Errorf("codec: decoding %q: %w", k, err)
		}
		m.Set(k, v)
	}
	return t.NewFromOrdered(m)
}
