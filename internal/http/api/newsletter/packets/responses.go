package packets

// SignupResponse reports the stored subscription. WelcomeSent is false
// when the subscriber was saved but the welcome email could not be
// delivered.
type SignupResponse struct {
	SubscriberID int      `json:"subscriber_id"`
	Sentiment    string   `json:"sentiment"`
	Score        float64  `json:"score"`
	Tags         []string `json:"tags,omitempty"`
	WelcomeSent  bool     `json:"welcome_sent"`
}
