// Package compress provides the compression codecs used by the packed proof
// envelope (see entity.Pack).
//
// Four algorithms are available, selected by format.CompressionType:
//
//   - None: pass-through, for already dense or tiny proofs
//   - Zstd: best ratio, for archival
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// Usage:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(wire)
//
// All codecs are stateless values and safe for concurrent use; encoder and
// decoder state is pooled internally where the underlying library benefits
// from reuse.
package compress
