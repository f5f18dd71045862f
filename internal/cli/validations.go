package cli

// validateRunFlags validates the flags of the run command.
func validateRunFlags() string {
	// Warmup runs only matter when warmup is enabled.
	if runWarmup && runWarmupRuns <= 0 {
		return "Warmup runs must be greater than 0."
	}

	// The deviation is relative to the mean, so it must be a fraction.
	if runDeviation <= 0 || runDeviation >= 1 {
		return "Deviation must be between 0 and 1, exclusive."
	}

	if runConfidence <= 0 || runConfidence >= 1 {
		return "Confidence must be between 0 and 1, exclusive."
	}

	// At least 1 measured run required.
	if runMinRuns <= 0 {
		return "Min runs must be greater than 0."
	}

	if runMaxRuns < runMinRuns {
		return "Max runs must not be less than min runs."
	}

	if runMaxTime < 0 {
		return "Max time must not be negative."
	}

	return ""
}
