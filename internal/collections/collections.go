// Package collections provides value codecs for storing plain Go types in
// cosmossdk.io/collections.
package collections

import (
	"encoding/json"
	"fmt"
	"reflect"

	collcodec "cosmossdk.io/collections/codec"
)

var _ collcodec.ValueCodec[struct{}] = jsonValue[struct{}]{}

// JSONValue returns a collections value codec which stores T as its JSON
// encoding. T must marshal deterministically, which holds for structs, slices
// and maps with string keys.
func JSONValue[T any]() collcodec.ValueCodec[T] {
	return jsonValue[T]{}
}

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonValue[T]) Decode(bz []byte) (T, error) {
	var value T
	if err := json.Unmarshal(bz, &value); err != nil {
		return value, fmt.Errorf("%w: %s", collcodec.ErrEncoding, err)
	}
	return value, nil
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(bz []byte) (T, error) {
	return c.Decode(bz)
}

func (c jsonValue[T]) Stringify(value T) string {
	bz, err := c.Encode(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(bz)
}

func (jsonValue[T]) ValueType() string {
	var value T
	return "json/" + reflect.TypeOf(&value).Elem().String()
}
