package service

import (
	"context"
	"strings"
	"unicode"

	"haus-finance/domain"
)

const ScriptedProviderName = "scripted"

type scriptedAnswer struct {
	topic       domain.Topic
	keywords    []string
	answer      string
	suggestions []string
}

// The canned HAUS answers, matched in order; the first keyword hit wins.
// Keywords match at the start of a word, so "rent" finds "rental" but not
// "current".
var scriptedAnswers = []scriptedAnswer{
	{
		topic:    domain.TopicSuburbs,
		keywords: []string{"suburb", "area", "where should", "neighbourhood", "neighborhood"},
		answer: "Suburbs within 15 km of the CBD with a new transport link or a school catchment change " +
			"have outperformed the wider market over the last five years. Look for median days on market " +
			"falling while listings stay flat: that is usually demand catching up with supply.",
		suggestions: []string{"Which suburbs have the best rental yield?", "How is the market tracking this quarter?"},
	},
	{
		topic:    domain.TopicInvestment,
		keywords: []string{"yield", "rent", "invest", "cashflow", "cash flow"},
		answer: "A gross yield above 4% is solid for a capital city house; units often sit closer to 5%. " +
			"Net yield is what matters once management fees, vacancy and holding costs come out, " +
			"so run the rental yield calculator with your real expenses before comparing properties.",
		suggestions: []string{"What is a good vacancy rate to assume?", "How much equity will I build in 10 years?"},
	},
	{
		topic:    domain.TopicFinance,
		keywords: []string{"mortgage", "repayment", "interest", "loan", "lmi", "deposit", "borrow", "afford"},
		answer: "With a 20% deposit you avoid lenders mortgage insurance and most lenders will assess you " +
			"at about five times your disposable income. Every 0.25% on the rate moves the repayment on a " +
			"$500,000 loan by roughly $80 a month, so stress test at two points above today's rate.",
		suggestions: []string{"How much can I borrow?", "Should I pay fortnightly instead of monthly?"},
	},
	{
		topic:    domain.TopicMarket,
		keywords: []string{"market", "price", "growth", "trend", "forecast", "auction", "clearance"},
		answer: "Auction clearance rates have held above 65% this quarter and listings remain below the " +
			"five-year average. Our moderate scenario assumes 6% annual growth; the conservative case " +
			"uses 3% and the optimistic case 9%.",
		suggestions: []string{"Which suburbs are growing fastest?", "What does the moderate scenario look like over 20 years?"},
	},
}

const generalAnswer = "I can help with market trends, suburb research, investment returns and home loan " +
	"questions. Try asking about rental yield, borrowing power or how a suburb is performing."

// ScriptedProvider answers from the built-in HAUS answer table. It never
// fails and is the fallback for every remote provider.
type ScriptedProvider struct{}

func NewScriptedProvider() *ScriptedProvider {
	return &ScriptedProvider{}
}

func (p *ScriptedProvider) Name() string { return ScriptedProviderName }

func (p *ScriptedProvider) Answer(_ context.Context, q domain.Question) (domain.Answer, error) {
	words := tokenize(q.Text)
	for _, entry := range scriptedAnswers {
		for _, kw := range entry.keywords {
			if containsKeyword(words, strings.Fields(kw)) {
				return domain.Answer{
					Text:        entry.answer,
					Topic:       entry.topic,
					Provider:    ScriptedProviderName,
					Suggestions: entry.suggestions,
				}, nil
			}
		}
	}

	// No keyword matched; fall back to the tab the question was asked from.
	for _, entry := range scriptedAnswers {
		if q.Topic != "" && entry.topic == q.Topic {
			return domain.Answer{
				Text:        entry.answer,
				Topic:       entry.topic,
				Provider:    ScriptedProviderName,
				Suggestions: entry.suggestions,
			}, nil
		}
	}

	return domain.Answer{
		Text:     generalAnswer,
		Topic:    domain.TopicGeneral,
		Provider: ScriptedProviderName,
		Suggestions: []string{
			"What rental yield should I expect?",
			"How much can I borrow on my income?",
			"Which suburbs are growing fastest?",
		},
	}, nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsKeyword reports whether kw appears as consecutive words, each
// question word starting with the matching keyword word.
func containsKeyword(words, kw []string) bool {
	if len(kw) == 0 {
		return false
	}
	for i := 0; i+len(kw) <= len(words); i++ {
		match := true
		for j, k := range kw {
			if !strings.HasPrefix(words[i+j], k) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
