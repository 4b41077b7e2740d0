package bot

import (
	"fmt"
	"strings"
)

// The quote form has five fixed steps. Answers are accepted as typed:
// numeric codes decode to their labels, anything else is stored
// verbatim. There is no re-prompting on unrecognized input.
const (
	stepProjectType = 1
	stepBudget      = 2
	stepTimeline    = 3
	stepDescription = 4
	stepName        = 5
)

// Exit keywords abandon the form from any step.
var exitKeywords = map[string]bool{
	"menu":   true,
	"cancel": true,
	"exit":   true,
	"back":   true,
}

var budgetLabels = map[string]string{
	"1": "Under ₦500K",
	"2": "₦500K - ₦1M",
	"3": "₦1M - ₦3M",
	"4": "₦3M - ₦10M",
	"5": "Above ₦10M",
}

var timelineLabels = map[string]string{
	"1": "Less than 1 month",
	"2": "1-3 months",
	"3": "3-6 months",
	"4": "6+ months",
}

// decodeOption maps a numeric menu code to its label, or returns the
// trimmed input verbatim when it isn't a known code.
func decodeOption(labels map[string]string, input string) string {
	trimmed := strings.TrimSpace(input)
	if label, ok := labels[trimmed]; ok {
		return label
	}
	return trimmed
}

const projectTypePrompt = `📝 *Request a Quote* (1/5)

What kind of project do you have in mind? (e.g. mobile app, company website, AI chatbot)

Type *cancel* at any time to go back to the menu.`

const budgetPrompt = `💰 *Budget* (2/5)

What budget range are you working with?

1. Under ₦500K
2. ₦500K - ₦1M
3. ₦1M - ₦3M
4. ₦3M - ₦10M
5. Above ₦10M

Reply with a number, or type your own range.`

const timelinePrompt = `📅 *Timeline* (3/5)

When do you need this delivered?

1. Less than 1 month
2. 1-3 months
3. 3-6 months
4. 6+ months

Reply with a number, or type your own timeline.`

const descriptionPrompt = `🧾 *Project details* (4/5)

Briefly describe the project — goals, key features, anything we should know.`

const namePrompt = `🙋 *Almost done* (5/5)

What name should we put on the quote?`

func leadSummary(name, projectType, budget, timeline string) string {
	return fmt.Sprintf(`✅ *Quote request received — thank you, %s!*

• Project: %s
• Budget: %s
• Timeline: %s

Our team will review your request and get back to you within one business day.

Type *menu* to go back to the main menu.`, name, projectType, budget, timeline)
}
