package transfer

// UGCPost is the request body for the LinkedIn ugcPosts endpoint.
type UGCPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent SpecificContent `json:"specificContent"`
	Visibility      Visibility      `json:"visibility"`
}

type SpecificContent struct {
	ShareContent ShareContent `json:"com.linkedin.ugc.ShareContent"`
}

type ShareContent struct {
	ShareCommentary    Text         `json:"shareCommentary"`
	ShareMediaCategory string       `json:"shareMediaCategory"`
	Media              []ShareMedia `json:"media,omitempty"`
}

type ShareMedia struct {
	Status      string `json:"status"`
	Description Text   `json:"description"`
	Media       string `json:"media"`
	Title       Text   `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

type Visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// UGCPostResponse is the subset of the ugcPosts response the publisher needs.
type UGCPostResponse struct {
	ID string `json:"id"`
}

// PublishResult is the successful outcome of one publish attempt.
type PublishResult struct {
	PostID string `json:"linkedin_post_id"`
	URL    string `json:"linkedin_url"`
}
