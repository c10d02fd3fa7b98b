package chat

import "fmt"

// Greeting is the optional opening assistant message.
const Greeting = "Hello! I'm your AI startup adviser. I can help you with business ideas, " +
	"market analysis, funding strategies, and growth plans. What would you like to discuss?"

const adviserTemplate = `You are an expert startup adviser with years of experience helping entrepreneurs succeed. The user asks: %q.

Please provide:
- Actionable, specific advice
- Step-by-step guidance where applicable
- Real-world examples or case studies
- Potential challenges and how to overcome them

Keep your response helpful, encouraging, and practical for startups.`

// Suggestion is a canned prompt offered to the user.
type Suggestion struct {
	Text     string
	Category string
}

var quickSuggestions = []Suggestion{
	{Text: "Validate my startup idea", Category: "ideation"},
	{Text: "Market analysis for my product", Category: "market"},
	{Text: "Create a business plan", Category: "planning"},
	{Text: "Funding and investor strategies", Category: "funding"},
}

// QuickSuggestions returns the canned prompts.
func QuickSuggestions() []Suggestion {
	out := make([]Suggestion, len(quickSuggestions))
	copy(out, quickSuggestions)
	return out
}

// AdviserPrompt wraps a user question in the adviser persona.
func AdviserPrompt(question string) string {
	return fmt.Sprintf(adviserTemplate, question)
}
