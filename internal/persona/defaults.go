package persona

// DefaultConfig returns the built-in personas for the seeded contacts.
func DefaultConfig() *Config {
	return &Config{
		Personas: map[string]Persona{
			"alice": {
				Lines: []string{
					"Haha, totally!",
					"Wait, really? Tell me more.",
					"I was just thinking the same thing.",
					"Okay okay, but have you had coffee yet?",
					"Send me the photos when you get a chance!",
				},
			},
			"ben": {
				Lines: []string{
					"Yeah, the new API is wild.",
					"Let me check and get back to you.",
					"Deploy went out an hour ago, all green.",
					"Ha, classic. Ship it.",
				},
			},
			"cara": {
				Lines: []string{
					"Sounds good to me 👍",
					"Can we move that to Thursday?",
					"On it!",
				},
			},
		},
		Default: Persona{
			Lines: []string{
				"Interesting!",
				"Got it, thanks.",
				"Sounds good!",
				"Let me get back to you on that.",
			},
		},
	}
}
