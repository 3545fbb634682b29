package codec

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// FlagCompressed marks a zstd compressed payload.
const FlagCompressed = uint8(1)

var (
	CodecVersion    = uint16(1)
	CodecMagicBytes = crypto.Keccak256([]byte("shed-object-codec"))

	// HeaderSize is the number of bytes preceding the payload.
	HeaderSize = len(CodecMagicBytes) + 2 + 1 + common.HashLength + 4
)

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Options controls how values are encoded.
type Options struct {
	Compress bool // compress the JSON payload with zstd
}

// Object is a decoded container. Payload is always the uncompressed JSON document.
type Object struct {
	Version  uint16
	Flags    uint8
	Checksum common.Hash
	Payload  []byte
}

// Compressed reports whether the payload was stored compressed.
func (obj *Object) Compressed() bool {
	return obj.Flags&FlagCompressed != 0
}

// Decode unmarshals the payload into out, which must be a non-nil pointer.
func (obj *Object) Decode(out interface{}) error {
	if err := json.Unmarshal(obj.Payload, out); err != nil {
		return errors.WithMessage(err, "failed to unmarshal object payload")
	}
	return nil
}

// Marshal encodes value into the object format.
func Marshal(value interface{}, opts Options) ([]byte, error) {
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal value to JSON")
	}

	var flags uint8
	if opts.Compress {
		payload = encoder.EncodeAll(payload, nil)
		flags |= FlagCompressed
	}

	if uint64(len(payload)) > math.MaxUint32 {
		return nil, errors.New("payload too large")
	}

	data := make([]byte, HeaderSize+len(payload))
	offset := 0

	copy(data[offset:], CodecMagicBytes)
	offset += len(CodecMagicBytes)

	binary.BigEndian.PutUint16(data[offset:], CodecVersion)
	offset += 2

	data[offset] = flags
	offset++

	copy(data[offset:], crypto.Keccak256(payload))
	offset += common.HashLength

	binary.BigEndian.PutUint32(data[offset:], uint32(len(payload)))
	offset += 4

	copy(data[offset:], payload)

	return data, nil
}

// Unmarshal verifies and decodes data produced by Marshal.
func Unmarshal(data []byte) (*Object, error) {
	offset := 0
	datalen := len(data)

	if datalen < offset+len(CodecMagicBytes) {
		return nil, errors.New("not enough data to read magic bytes")
	}
	if !bytes.Equal(data[offset:offset+len(CodecMagicBytes)], CodecMagicBytes) {
		return nil, errors.New("invalid magic bytes")
	}
	offset += len(CodecMagicBytes)

	if datalen < offset+2 {
		return nil, errors.New("not enough data to read codec version")
	}
	version := binary.BigEndian.Uint16(data[offset : offset+2])
	if version != CodecVersion {
		return nil, errors.Errorf("unsupported codec version: got %d, expected %d", version, CodecVersion)
	}
	offset += 2

	if datalen < offset+1 {
		return nil, errors.New("not enough data to read flags")
	}
	flags := data[offset]
	if flags&^FlagCompressed != 0 {
		return nil, errors.Errorf("unknown flags: %#x", flags)
	}
	offset++

	if datalen < offset+common.HashLength {
		return nil, errors.New("not enough data to read checksum")
	}
	checksum := common.BytesToHash(data[offset : offset+common.HashLength])
	offset += common.HashLength

	if datalen < offset+4 {
		return nil, errors.New("not enough data to read payload length")
	}
	length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	if datalen != offset+length {
		return nil, errors.Errorf("payload length mismatch: header says %d bytes, found %d", length, datalen-offset)
	}
	payload := data[offset:]

	if crypto.Keccak256Hash(payload) != checksum {
		return nil, errors.New("payload checksum mismatch")
	}

	if flags&FlagCompressed != 0 {
		decompressed, err := decoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to decompress payload")
		}
		payload = decompressed
	}

	return &Object{
		Version:  version,
		Flags:    flags,
		Checksum: checksum,
		Payload:  payload,
	}, nil
}

// Decode is a shortcut for Unmarshal followed by Object.Decode.
func Decode(data []byte, out interface{}) error {
	obj, err := Unmarshal(data)
	if err != nil {
		return err
	}
	return obj.Decode(out)
}
