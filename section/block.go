package section

import (
	"fmt"

	"github.com/arloliu/pcproof/errs"
)

// ProofRegion returns the part of a raw block that starts at StartOfPCP.
//
// The returned slice aliases raw. It runs to the end of the block because the
// proof length is only known after decoding the entity list.
//
// Parameters:
//   - raw: Full raw block bytes
//
// Returns:
//   - []byte: raw[StartOfPCP:]
//   - error: ErrBlockTooShort if raw does not reach StartOfPCP
func ProofRegion(raw []byte) ([]byte, error) {
	if len(raw) < StartOfPCP {
		return nil, fmt.Errorf("block length %d: %w", len(raw), errs.ErrBlockTooShort)
	}

	return raw[StartOfPCP:], nil
}

// SplitBlock splits a raw block into its header region and proof region.
//
// Returns:
//   - header: raw[:StartOfPCP]
//   - proof: raw[StartOfPCP:]
//   - error: ErrBlockTooShort if raw does not reach StartOfPCP
func SplitBlock(raw []byte) (header []byte, proof []byte, err error) {
	proof, err = ProofRegion(raw)
	if err != nil {
		return nil, nil, err
	}

	return raw[:StartOfPCP], proof, nil
}
