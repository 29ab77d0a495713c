package models

import (
	"fmt"
	"math/big"
	"strings"
)

// BigInt is an arbitrary-precision integer that marshals to a decimal string.
// Token amounts are uint256 on chain and overflow every native integer type,
// so they are never represented as numbers on the wire or at rest.
type BigInt struct {
	big.Int
}

func NewBigInt(x int64) *BigInt {
	b := new(BigInt)
	b.SetInt64(x)
	return b
}

func FromBig(x *big.Int) *BigInt {
	b := new(BigInt)
	if x != nil {
		b.Set(x)
	}
	return b
}

func ParseBigInt(s string) (*BigInt, error) {
	b := new(BigInt)
	if _, ok := b.SetString(s, 10); !ok {
		return nil, fmt.Errorf("invalid integer string: %q", s)
	}
	return b, nil
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		b.SetInt64(0)
		return nil
	}
	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("invalid integer string: %q", s)
	}
	return nil
}

// Big returns the wrapped value, treating nil as zero.
func (b *BigInt) Big() *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return &b.Int
}
