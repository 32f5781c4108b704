package evaluation

// academicBandTable maps a raw correct count (0..40) to the IELTS Academic
// Reading band. The table is non-linear and plateaus at both ends.
var academicBandTable = map[int]float64{
	0: 0.0, 1: 1.0, 2: 2.0, 3: 2.5, 4: 3.0, 5: 3.5,
	6: 4.0, 7: 4.0, 8: 4.5, 9: 4.5, 10: 5.0,
	11: 5.0, 12: 5.5, 13: 5.5, 14: 6.0, 15: 6.0,
	16: 6.5, 17: 6.5, 18: 6.5, 19: 7.0, 20: 7.0,
	21: 7.0, 22: 7.0, 23: 7.5, 24: 7.5, 25: 8.0,
	26: 8.0, 27: 8.0, 28: 8.0, 29: 8.5, 30: 8.5,
	31: 8.5, 32: 8.5, 33: 9.0, 34: 9.0, 35: 9.0,
	36: 9.0, 37: 9.0, 38: 9.0, 39: 9.0, 40: 9.0,
}

// BandScore maps a raw correct count to the band value. Counts above the
// table maximum map to 9.0; the table itself has no gaps, so no
// interpolation exists.
func BandScore(correctCount int) float64 {
	if band, ok := academicBandTable[correctCount]; ok {
		return band
	}
	if correctCount > 40 {
		return 9.0
	}
	return 0.0
}

var bandInterpretations = map[float64]string{
	9.0: "Expert user - You have fully operational command of the language.",
	8.5: "Very good user - You have fully operational command with occasional inaccuracies.",
	8.0: "Very good user - You handle complex detailed argumentation well.",
	7.5: "Good user - You have operational command with occasional inaccuracies.",
	7.0: "Good user - You have operational command of the language.",
	6.5: "Competent user - Generally effective command despite some inaccuracies.",
	6.0: "Competent user - You have an effective command despite inaccuracies.",
	5.5: "Modest user - You have partial command and can handle overall meaning.",
	5.0: "Modest user - You have partial command of the language.",
	4.5: "Limited user - Basic competence is limited to familiar situations.",
	4.0: "Limited user - You have basic competence in very familiar situations.",
	3.5: "Extremely limited user - You convey meaning in very familiar situations.",
	3.0: "Extremely limited user - You can understand general meaning in familiar contexts.",
	2.5: "Intermittent user - You have great difficulty understanding.",
	2.0: "Intermittent user - You struggle with real communication.",
	1.0: "Non-user - You have no ability to use the language.",
	0.0: "Did not attempt the test.",
}

// BandInterpretation returns the standard description for a band value.
func BandInterpretation(band float64) string {
	if text, ok := bandInterpretations[band]; ok {
		return text
	}
	return "Keep practicing to improve your score!"
}
