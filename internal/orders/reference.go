package orders

import (
	"crypto/rand"
	"fmt"
)

// ReferenceLength is the size of the customer-facing order identifier.
const ReferenceLength = 10

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxUnbiasedByte is the largest byte value usable without skewing the
// charset distribution (256 is not a multiple of 36).
const maxUnbiasedByte = byte(256 - 256%len(referenceCharset))

// NewReference produces a random uppercase alphanumeric order identifier.
// Bytes at or above the unbiased ceiling are discarded and redrawn.
// Uniqueness is enforced by the database; callers retry on collision.
func NewReference() (string, error) {
	out := make([]byte, 0, ReferenceLength)
	buf := make([]byte, ReferenceLength*2)
	for len(out) < ReferenceLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generating order reference: %w", err)
		}
		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			out = append(out, referenceCharset[int(b)%len(referenceCharset)])
			if len(out) == ReferenceLength {
				break
			}
		}
	}
	return string(out), nil
}
