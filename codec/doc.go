// Package codec implements the SHED object format, the binary container every value saved
// into a managed folder is written in.
//
// An encoded object is laid out as follows (integers are big endian):
//
//	magic bytes     32 bytes, Keccak256("shed-object-codec")
//	codec version    2 bytes
//	flags            1 byte, bit 0 set when the payload is zstd compressed
//	checksum        32 bytes, Keccak256 of the stored payload
//	payload length   4 bytes
//	payload          JSON representation of the value, optionally compressed
//
// The checksum lets readers tell a truncated or corrupted file apart from a valid one, so the
// storage layer can report it as unreadable instead of handing back garbage.
package codec
