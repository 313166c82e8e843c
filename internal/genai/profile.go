package genai

// ModelProfile names a tier of model plus its decoding parameters.
// Operations pick a profile, not a model id; the concrete model comes
// from configuration at client construction.
type ModelProfile struct {
	Name            string
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

var (
	// ProfileCapable is for long-form structured documents.
	ProfileCapable = ModelProfile{
		Name:            "capable",
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 8192,
	}

	// ProfileFast is for short analyses and scoring.
	ProfileFast = ModelProfile{
		Name:            "fast",
		Temperature:     0.3,
		TopK:            20,
		TopP:            0.9,
		MaxOutputTokens: 2048,
	}
)
