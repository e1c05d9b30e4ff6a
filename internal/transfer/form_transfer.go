package transfer

// FormCreation mirrors the two-step intake form.
type FormCreation struct {
	Industry            string `json:"industry"`
	Audience            string `json:"audience"`
	Situation           string `json:"situation"`
	KeyInsight          string `json:"key_insight"`
	Experience          string `json:"experience"`
	CredibilitySignpost string `json:"credibility_signpost"`
	PersonalAnecdote    string `json:"personal_anecdote"`
	Timeframe           string `json:"timeframe"`
	ContextualInfo      string `json:"contextual_info"`
	Username            string `json:"username"`
}

// DraftCreation is the manual intake payload.
type DraftCreation struct {
	Content       string
	Source        string
	Industry      string
	Audience      string
	GoldenThreads string
}
