package transfer

// PublishedEvent is posted to the configured webhook after a successful
// publish. Delivery is best effort.
type PublishedEvent struct {
	Event          string  `json:"event"`
	PostID         string  `json:"post_id"`
	LinkedInPostID string  `json:"linkedin_post_id"`
	LinkedInURL    string  `json:"linkedin_url"`
	Content        string  `json:"content"`
	PublishedAt    string  `json:"published_at"`
	Industry       *string `json:"industry,omitempty"`
	Audience       *string `json:"audience,omitempty"`
}

// FormEvent forwards an intake form submission to the generation workflow.
type FormEvent struct {
	SubmissionID string            `json:"submission_id"`
	FormData     map[string]string `json:"form_data"`
	Source       string            `json:"source"`
	Timestamp    string            `json:"timestamp"`
}
