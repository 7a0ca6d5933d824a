package proto

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// JSONContentSubtype is the content-subtype clients must request (via
// grpc.CallContentSubtype) to negotiate jsonCodec instead of grpc's default
// proto codec, which would fail type-asserting our plain structs to
// proto.Message.
const JSONContentSubtype = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return JSONContentSubtype }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
