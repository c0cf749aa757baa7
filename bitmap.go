package dataproperty

import (
	"math/bits"

	"github.com/bjaus/dataproperty/typecheck"
)

const (
	floatBitmap  = typecheck.RealNumber | typecheck.Infinity | typecheck.NaN
	numberBitmap = floatBitmap | typecheck.Integer
)

// unifiedPriority lists the codes tried, in order, when no promotion rule
// applies.
var unifiedPriority = []typecheck.Typecode{
	typecheck.String,
	typecheck.RealNumber,
	typecheck.Integer,
	typecheck.DateTime,
	typecheck.Dictionary,
	typecheck.IPAddress,
	typecheck.List,
	typecheck.Bool,
	typecheck.Infinity,
	typecheck.NaN,
	typecheck.NullString,
}

// unifiedTypecode reduces a bitmap of observed cell typecodes to the type of
// the column that holds them.
func unifiedTypecode(bitmap typecheck.Typecode) typecheck.Typecode {
	if bitmap == typecheck.None {
		return typecheck.None
	}
	if isFloatPromotable(bitmap) {
		return typecheck.RealNumber
	}
	if isMixed(bitmap, typecheck.Bool) || isMixed(bitmap, typecheck.DateTime) {
		return typecheck.String
	}
	for _, tc := range unifiedPriority {
		if bitmap&tc != 0 {
			return tc
		}
	}
	return typecheck.String
}

// isFloatPromotable reports whether a column made only of numbers and empty
// strings mixes enough numeric kinds to be a real number column.
func isFloatPromotable(bitmap typecheck.Typecode) bool {
	if bitmap&^(numberBitmap|typecheck.NullString) != 0 {
		return false
	}
	return bitCount(bitmap&(floatBitmap|typecheck.NullString)) >= 2 ||
		bitCount(bitmap&numberBitmap) >= 2
}

// isMixed reports whether bitmap holds tc together with any other code.
func isMixed(bitmap, tc typecheck.Typecode) bool {
	return bitmap&tc != 0 && bitmap&^tc != 0
}

func bitCount(tc typecheck.Typecode) int {
	return bits.OnesCount16(uint16(tc))
}
