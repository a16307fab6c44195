package escape

// Lanes is the number of points iterated together in one group.
// Four float64 lanes fill one 256-bit vector register.
const Lanes = 4

// F64x4 holds one float64 per lane.
// Fixed-size arrays with simple loops let the compiler vectorize.
type F64x4 [Lanes]float64

// U32x4 holds one iteration counter per lane.
type U32x4 [Lanes]uint32

// Mask4 is a per-lane predicate.
type Mask4 [Lanes]bool

// SplatF64 broadcasts n to every lane.
func SplatF64(n float64) F64x4 {
	var result F64x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F64x4) Add(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F64x4) Sub(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication. Products are rounded before any
// following add, never fused.
func (v F64x4) Mul(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = float64(v[i] * other[i])
	}
	return result
}

// Less compares lane by lane. NaN lanes compare false.
func (v F64x4) Less(other F64x4) Mask4 {
	var result Mask4
	for i := range v {
		result[i] = v[i] < other[i]
	}
	return result
}

// Blend takes lanes from other where m is set and keeps v elsewhere.
func (v F64x4) Blend(other F64x4, m Mask4) F64x4 {
	result := v
	for i := range m {
		if m[i] {
			result[i] = other[i]
		}
	}
	return result
}

// Any reports whether at least one lane is set.
func (m Mask4) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// AddMask increments the lanes selected by m.
func (v U32x4) AddMask(m Mask4) U32x4 {
	result := v
	for i := range m {
		if m[i] {
			result[i]++
		}
	}
	return result
}
