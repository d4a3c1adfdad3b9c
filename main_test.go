package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haus-finance/domain"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HISTORY_BACKEND", "memory")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("INSIGHT_PROVIDER", "scripted")
	t.Setenv("TYPING_DELAY", "1ms")
	t.Setenv("LOG_LEVEL", "error")
	jsonOutput = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", currency(1234.5))
	assert.Equal(t, "-$80.00", currency(-80))
	assert.Equal(t, "$0.00", currency(0))
}

func TestWholeDollars(t *testing.T) {
	assert.Equal(t, "$1,235", wholeDollars(1234.6))
	assert.Equal(t, "-$5,000", wholeDollars(-5000))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitCSV(" http://a, ,http://b "))
	assert.Nil(t, splitCSV(""))
}

func TestStampDutyCommandJSON(t *testing.T) {
	out := runCLI(t, "stamp-duty", "--price", "500000", "--json")

	var got domain.StampDutyResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 500_000.0, got.PropertyPrice)
	assert.InDelta(t, 17_235, got.StampDuty, 0.01)
}

func TestMortgageCommandTable(t *testing.T) {
	out := runCLI(t, "mortgage", "--price", "500000", "--deposit", "20", "--rate", "6", "--term", "30")
	assert.Contains(t, out, "Mortgage repayments")
	assert.Contains(t, out, "$400,000.00")
	assert.NotContains(t, out, "LMI")
}

func TestAskCommandJSON(t *testing.T) {
	out := runCLI(t, "ask", "--json", "what", "rental", "yield", "should", "I", "expect?")

	var got domain.Answer
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.TopicInvestment, got.Topic)
	assert.Equal(t, "scripted", got.Provider)
}

func TestRenderAnswer(t *testing.T) {
	out, err := renderAnswer(domain.Answer{
		Text:        "Net yield is what matters.",
		Topic:       domain.TopicInvestment,
		Provider:    "scripted",
		Suggestions: []string{"How much can I borrow?"},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Investment")
	assert.Contains(t, out, "How much can I borrow?")
}
