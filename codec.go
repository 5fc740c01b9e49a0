package stride

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec defines the deserialization contract for fix payloads.
// Implement this interface to accept alternative wire formats.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// DecodeBatch decodes a payload holding either a single fix or a list of
// fixes. Every fix must carry both latitude and longitude and nothing
// else. Blank payloads decode to an empty batch.
func DecodeBatch(codec Codec, data []byte) (Batch, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var batch Batch
	listErr := codec.Unmarshal(data, &batch)
	if listErr == nil {
		return batch, nil
	}
	if data[0] == '[' || data[0] == '-' {
		return nil, fmt.Errorf("decode %s fix list: %w", codec.ContentType(), listErr)
	}

	var fix GeoPoint
	if err := codec.Unmarshal(data, &fix); err != nil {
		return nil, fmt.Errorf("decode %s fix payload: %w", codec.ContentType(), err)
	}
	return Batch{fix}, nil
}
