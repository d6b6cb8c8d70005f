// Package token turns template values into compact URL-safe text and back.
//
// A token is the base64url (unpadded) encoding of an LZMA stream whose
// payload is the deterministic protobuf encoding of a google.protobuf.Value.
// Mapping keys are sorted before serialization, so logically equal values
// always produce byte-identical tokens.
package token

import (
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jmylchreest/tincture/pkg/value"
)

// DefaultMaxDecodedBytes bounds the decompressed payload of a token.
const DefaultMaxDecodedBytes = 16 << 20

// Stage names the pipeline step an EncodingError came from.
type Stage string

const (
	StageSerialize   Stage = "serialize"
	StageCompress    Stage = "compress"
	StageDecode      Stage = "decode"
	StageDecompress  Stage = "decompress"
	StageDeserialize Stage = "deserialize"
)

// EncodingError reports a failure in the encode or decode pipeline.
type EncodingError struct {
	Stage Stage
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error at %s stage: %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// Codec encodes and decodes tokens. The zero value is not usable; build one
// with NewCodec.
type Codec struct {
	maxDecoded int64
}

// Option configures a Codec.
type Option func(*Codec)

// WithMaxDecodedBytes overrides DefaultMaxDecodedBytes. Non-positive values
// are ignored.
func WithMaxDecodedBytes(n int64) Option {
	return func(c *Codec) {
		if n > 0 {
			c.maxDecoded = n
		}
	}
}

// NewCodec creates a Codec.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{maxDecoded: DefaultMaxDecodedBytes}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = NewCodec()

// Encode encodes v with the default codec.
func Encode(v value.Value) (string, error) { return defaultCodec.Encode(v) }

// Decode decodes tok with the default codec.
func Decode(tok string) (value.Value, error) { return defaultCodec.Decode(tok) }

// Encode serializes, compresses and base64url-encodes v.
func (c *Codec) Encode(v value.Value) (string, error) {
	raw, err := Serialize(v)
	if err != nil {
		return "", &EncodingError{Stage: StageSerialize, Err: err}
	}
	compressed, err := compress(raw)
	if err != nil {
		return "", &EncodingError{Stage: StageCompress, Err: err}
	}
	return base64.RawURLEncoding.EncodeToString(compressed), nil
}

// Decode reverses Encode. Corrupt, truncated or oversized input fails with
// an *EncodingError.
func (c *Codec) Decode(tok string) (value.Value, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(tok))
	if err != nil {
		return value.Value{}, &EncodingError{Stage: StageDecode, Err: err}
	}
	raw, err := decompress(compressed, c.maxDecoded)
	if err != nil {
		return value.Value{}, &EncodingError{Stage: StageDecompress, Err: err}
	}
	v, err := Deserialize(raw)
	if err != nil {
		return value.Value{}, &EncodingError{Stage: StageDeserialize, Err: err}
	}
	return v, nil
}

// Serialize returns the canonical binary form of v. Values nested deeper
// than MaxDepth are rejected.
func Serialize(v value.Value) ([]byte, error) {
	pb, err := toProto(v, 0)
	if err != nil {
		return nil, err
	}
	return proto.MarshalOptions{Deterministic: true}.Marshal(pb)
}

// Deserialize parses the output of Serialize. It accepts exactly the
// nesting depth Serialize produces.
func Deserialize(raw []byte) (value.Value, error) {
	var pb structpb.Value
	if err := (proto.UnmarshalOptions{RecursionLimit: recursionLimit}).Unmarshal(raw, &pb); err != nil {
		return value.Value{}, err
	}
	return fromProto(&pb, 0)
}
