package mandel

// Limit bounds the iterations spent on a single point. It is also the number of
// distinguishable intensity levels.
const Limit = 255

// EscapeTime iterates z = z*z + c from z = 0 and reports after how many iterations
// |z|² exceeded 4. escaped is false if that did not happen within Limit iterations,
// in which case c is taken to be a member of the set.
func EscapeTime(c complex128) (count uint8, escaped bool) {
	var z complex128
	for i := range Limit {
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return uint8(i), true
		}
		z = z*z + c
	}
	return 0, false
}

// Intensity is the gray level of point c: members of the set are black, points
// that escape immediately are nearly white.
func Intensity(c complex128) uint8 {
	count, escaped := EscapeTime(c)
	if !escaped {
		return 0
	}
	return Limit - count
}
