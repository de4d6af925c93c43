package compact

import (
	"math"
	"strconv"
)

// AppendInt appends v as a sign-prefixed base-32 token: '+' or '-' followed by
// the digits 0-9a-v of |v|, most significant first. Zero is "+0".
func AppendInt(buf []byte, v int64) []byte {
	if v < 0 {
		buf = append(buf, '-')
		// -v overflows for MinInt64; the unsigned form does not.
		return strconv.AppendUint(buf, uint64(-(v+1))+1, Radix)
	}
	buf = append(buf, '+')
	return strconv.AppendUint(buf, uint64(v), Radix)
}

func digit(c byte) (int64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return int64(c - '0'), true
	case 'a' <= c && c <= 'v':
		return int64(c-'a') + 10, true
	}
	return 0, false
}

// ReadInt decodes the token starting at pos and returns its value and the
// index just past it. A sign, or the separator, after the first character ends
// the token and is left for the next read; so does the end of s.
//
// ok is false when pos is at or past the end of s, when the token holds a
// character outside the alphabet or no digits at all, or when it overflows
// int64.
func ReadInt(s string, pos int) (v int64, next int, ok bool) {
	if pos < 0 || pos >= len(s) {
		return 0, pos, false
	}
	neg := false
	i := pos
	switch s[i] {
	case '-':
		neg = true
		i++
	case '+':
		i++
	}
	var u uint64
	digits := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c == '+' || c == '-' || c == Separator {
			break
		}
		d, isDigit := digit(c)
		if !isDigit {
			return 0, pos, false
		}
		if u > math.MaxUint64>>5 {
			return 0, pos, false
		}
		u = u<<5 | uint64(d)
		digits++
	}
	if digits == 0 {
		return 0, pos, false
	}
	switch {
	case !neg && u <= math.MaxInt64:
		return int64(u), i, true
	case neg && u <= 1<<63:
		return -int64(u-1) - 1, i, true
	}
	return 0, pos, false
}

// ReadDouble reads an integer token and returns it as a float64. Multipliers
// are always written as integers.
func ReadDouble(s string, pos int) (float64, int, bool) {
	v, next, ok := ReadInt(s, pos)
	return float64(v), next, ok
}

// AppendValue scales value by multiplier, rounds half to even, appends the
// difference from prev as a token and returns the new scaled value.
func AppendValue(buf []byte, value float64, prev int64, multiplier float64) ([]byte, int64) {
	scaled := int64(math.RoundToEven(value * multiplier))
	return AppendInt(buf, scaled-prev), scaled
}
