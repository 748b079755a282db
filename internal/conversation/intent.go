package conversation

import "strings"

// Intent is a top-level user goal detected from free text.
type Intent string

const (
	IntentBook       Intent = "book"
	IntentCancel     Intent = "cancel"
	IntentReschedule Intent = "reschedule"
	IntentView       Intent = "view"
	IntentUnknown    Intent = "unknown"
)

// intentRule pairs an intent with the keywords that trigger it.
type intentRule struct {
	intent   Intent
	keywords []string
}

// intentRules is checked in order; the first matching rule wins. Cancel and
// reschedule come before view and book because their keywords are rarer and
// more specific, while book keywords are broad catch-alls. A message like
// "cancel my reschedule" must resolve to cancel.
var intentRules = []intentRule{
	{IntentCancel, []string{"cancel", "delete", "remove", "stop"}},
	{IntentReschedule, []string{"reschedule", "change", "modify", "update", "move"}},
	{IntentView, []string{"view", "see", "show", "list", "check", "my", "upcoming", "appointments"}},
	{IntentBook, []string{"book", "schedule", "appointment", "make", "new", "create", "set up"}},
}

// Classify maps free text to an intent via the ordered keyword table.
func Classify(text string) Intent {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.intent
			}
		}
	}
	return IntentUnknown
}
