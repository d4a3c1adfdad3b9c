package domain

// Topic mirrors the tabs of the intelligence hub.
type Topic string

const (
	TopicMarket     Topic = "market"
	TopicSuburbs    Topic = "suburbs"
	TopicInvestment Topic = "investment"
	TopicFinance    Topic = "finance"
	TopicGeneral    Topic = "general"
)

type Question struct {
	Text  string `json:"question"`
	Topic Topic  `json:"topic,omitempty"`
}

type Answer struct {
	Text        string   `json:"answer"`
	Topic       Topic    `json:"topic"`
	Provider    string   `json:"provider"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// AnswerChunk is one piece of a streamed answer.
type AnswerChunk struct {
	Text     string `json:"text"`
	Done     bool   `json:"done"`
	Provider string `json:"provider,omitempty"`
}
