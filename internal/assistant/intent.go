// internal/assistant/intent.go
package assistant

import (
	"regexp"
	"strings"
)

// Intent is the classified category of a user query. The set is closed;
// Dispatch has one handler per variant.
type Intent string

const (
	IntentProductsByCategory Intent = "products_by_category"
	IntentProductCount       Intent = "product_count"
	IntentProductList        Intent = "product_list"
	IntentProductPrice       Intent = "product_price"
	IntentUnrecognized       Intent = "unrecognized"
)

// Classification is an intent plus its extracted parameter: a category name
// for IntentProductsByCategory, a product-name fragment for
// IntentProductPrice, empty otherwise. Parameters are lower-cased and trimmed.
type Classification struct {
	Intent Intent
	Param  string
}

var (
	categoryPattern = regexp.MustCompile(`category\s+(\w+)|under\s+(\w+)`)
	pricePattern    = regexp.MustCompile(`price of (.+)|cost of (.+)|how much is (.+)|rate of (.+)`)

	countKeywords = []string{"how many", "number of", "count of", "total products"}
	listKeywords  = []string{"what products", "which products", "available products", "list products"}
	priceKeywords = []string{"price of", "cost of", "how much is", "rate of"}
)

// Classify maps an utterance to an intent. Predicates overlap, so evaluation
// order is fixed: category, count, list, price, then the help fallback.
// First match wins.
func Classify(utterance string) Classification {
	lower := strings.ToLower(utterance)

	if category := extractCategory(lower); category != "" &&
		(strings.Contains(lower, "products") || strings.Contains(lower, "items")) &&
		(strings.Contains(lower, "category") || strings.Contains(lower, "under")) {
		return Classification{Intent: IntentProductsByCategory, Param: category}
	}

	if containsAny(lower, countKeywords) {
		return Classification{Intent: IntentProductCount}
	}

	if containsAny(lower, listKeywords) {
		return Classification{Intent: IntentProductList}
	}

	if containsAny(lower, priceKeywords) {
		// Param may be empty: the intent matched but no fragment followed
		// the keyword. Dispatch answers with a prompt instead of querying.
		return Classification{Intent: IntentProductPrice, Param: extractProductName(lower)}
	}

	return Classification{Intent: IntentUnrecognized}
}

func extractCategory(lower string) string {
	m := categoryPattern.FindStringSubmatch(lower)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[2])
}

func extractProductName(lower string) string {
	m := pricePattern.FindStringSubmatch(lower)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return strings.TrimSpace(group)
		}
	}
	return ""
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
