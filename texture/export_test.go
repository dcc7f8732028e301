package texture

// Test-only accessors for unexported sampling internals.

// SampleOrientationForTest exposes sampleOrientation.
func (t *Texture) SampleOrientationForTest() (int, [3]float64) {
	return t.sampleOrientation()
}

// BinOfForTest exposes binOf.
func (t *Texture) BinOfForTest(euler [3]float64) int {
	return t.binOf(euler)
}
