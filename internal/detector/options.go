package detector

// DetectionOptions provides per-call configuration for detection
type DetectionOptions struct {
	// Verbose includes the full metric set in the report
	Verbose bool
}

// DefaultOptions returns default detection options
func DefaultOptions() DetectionOptions {
	return DetectionOptions{
		Verbose: false,
	}
}

// VerboseOptions returns options with the raw metrics included
func VerboseOptions() DetectionOptions {
	opts := DefaultOptions()
	opts.Verbose = true
	return opts
}
