package escape

// EscapeRadius2 is the squared magnitude at which an orbit counts as escaped.
const EscapeRadius2 = 4.0

var (
	four = SplatF64(EscapeRadius2)
	two  = SplatF64(2)
)

// Iterate is the single-lane form of IterateGroup.
func Iterate(cre, cim float64, maxIt int) int {
	var zre, zim float64 = 0, 0
	it := 0
	for ; float64(zre*zre)+float64(zim*zim) < EscapeRadius2 && it < maxIt; it += 1 {
		// z = z ^ 2 + c, products rounded as in the lane kernel
		copyZre := zre
		zre = float64(zre*zre) - float64(zim*zim) + cre
		zim = float64(float64(copyZre*zim)*2) + cim
	}
	return it
}

// IterateGroup runs z = z^2 + c for every lane at once. A lane stays active
// while |z|^2 < 4; once it escapes its z and counter are frozen while the
// remaining lanes keep iterating. The loop ends after maxIter steps or as
// soon as no lane is active, so every counter is in [0, maxIter].
func IterateGroup(cre, cim F64x4, maxIter int) U32x4 {
	var zre, zim F64x4
	var iter U32x4

	for i := 0; i < maxIter; i++ {
		zre2 := zre.Mul(zre)
		zim2 := zim.Mul(zim)

		active := zre2.Add(zim2).Less(four)
		if !active.Any() {
			break
		}

		reNew := zre2.Sub(zim2).Add(cre)
		imNew := zre.Mul(zim).Mul(two).Add(cim)

		zre = zre.Blend(reNew, active)
		zim = zim.Blend(imNew, active)
		iter = iter.AddMask(active)
	}
	return iter
}
