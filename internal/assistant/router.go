// internal/assistant/router.go
package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shopmate-api/internal/common/errors"
	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/models"
	"shopmate-api/internal/products"
)

// Reply templates. Lookup failures degrade to the intent's "not found"
// message; a raw error never reaches the caller.
const (
	ReplyUnexpectedFailure = "Something went wrong while accessing the database."
	ReplyCountError        = "Error fetching product count."
	ReplyNoProducts        = "No products found."
	ReplyPricePrompt       = "Please provide a product name to get the price."

	replyHelp = "I can help with:\n" +
		"- Product count\n" +
		"- Product names\n" +
		"- Product prices\n" +
		"- Products by category\n" +
		"Try asking:\n" +
		"- \"What products are in category electronics?\""
)

type Config struct {
	Currency     string
	ListLimit    int
	QueryTimeout time.Duration
}

// Router classifies utterances and produces reply text, performing at most
// one product-store lookup per invocation.
type Router struct {
	config *Config
	store  products.Store
	genai  *GenAIClient // optional fallback for unrecognized queries
	logger logger.Logger
}

func NewRouter(config *Config, store products.Store, genai *GenAIClient, log logger.Logger) *Router {
	return &Router{
		config: config,
		store:  store,
		genai:  genai,
		logger: log.WithFields(map[string]interface{}{"component": "intent-router"}),
	}
}

// Answer classifies the utterance, dispatches the matching lookup and
// formats the reply. It is the outermost failure boundary: every error path,
// panics included, terminates in a user-displayable string.
func (r *Router) Answer(ctx context.Context, utterance string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			stdErr := errors.NewUnexpectedFailureError(fmt.Sprintf("%v", rec))
			r.logger.Error("recovered panic during dispatch", errorFields(stdErr))
			reply = ReplyUnexpectedFailure
		}
	}()

	c := Classify(utterance)
	metrics.UtterancesRouted.WithLabelValues(string(c.Intent)).Inc()

	ctx, cancel := context.WithTimeout(ctx, r.config.QueryTimeout)
	defer cancel()

	switch c.Intent {
	case IntentProductsByCategory:
		return r.answerCategory(ctx, c.Param)
	case IntentProductCount:
		return r.answerCount(ctx)
	case IntentProductList:
		return r.answerList(ctx)
	case IntentProductPrice:
		return r.answerPrice(ctx, c.Param)
	default:
		return r.answerUnrecognized(ctx, utterance)
	}
}

func (r *Router) answerCategory(ctx context.Context, category string) string {
	names, err := r.store.NamesByCategory(ctx, category)
	if err != nil {
		r.logger.Warn("category lookup failed",
			errorFields(errors.NewLookupFailedError(string(models.QueryTypeNamesByCategory), err)))
	}
	if err != nil || len(names) == 0 {
		return fmt.Sprintf("No products found in category %q.", category)
	}
	return fmt.Sprintf("Here are some products in %q: %s", category, quoteJoin(names))
}

func (r *Router) answerCount(ctx context.Context) string {
	count, err := r.store.Count(ctx)
	if err != nil {
		r.logger.Warn("count lookup failed",
			errorFields(errors.NewLookupFailedError(string(models.QueryTypeProductCount), err)))
		return ReplyCountError
	}
	return fmt.Sprintf("There are %d product(s) in our database.", count)
}

func (r *Router) answerList(ctx context.Context) string {
	names, err := r.store.ListNames(ctx, r.config.ListLimit)
	if err != nil {
		r.logger.Warn("list lookup failed",
			errorFields(errors.NewLookupFailedError(string(models.QueryTypeProductList), err)))
	}
	if err != nil || len(names) == 0 {
		return ReplyNoProducts
	}
	return "Here are some available products: " + quoteJoin(names)
}

func (r *Router) answerPrice(ctx context.Context, fragment string) string {
	if fragment == "" {
		// Intent matched but no parameter captured; no query is issued.
		r.logger.Debug("price prompt",
			errorFields(errors.NewParameterMissingError(string(IntentProductPrice))))
		return ReplyPricePrompt
	}

	product, err := r.store.FindByName(ctx, fragment)
	if err != nil {
		r.logger.Warn("price lookup failed",
			errorFields(errors.NewLookupFailedError(string(models.QueryTypeFindByName), err)))
	}
	if err != nil || product == nil {
		return fmt.Sprintf("No product found matching %q.", fragment)
	}
	return fmt.Sprintf("The price of %q is %s%s.",
		product.Name, r.config.Currency, formatPrice(product.Price))
}

func (r *Router) answerUnrecognized(ctx context.Context, utterance string) string {
	r.logger.Debug("no intent matched",
		errorFields(errors.NewClassificationMissError(utterance)))

	if r.genai != nil {
		if reply, err := r.genai.Complete(ctx, utterance); err == nil && reply != "" {
			return reply
		} else if err != nil {
			r.logger.Warn("genai fallback failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return replyHelp
}

// errorFields flattens a taxonomy error into log fields.
func errorFields(stdErr *errors.StandardError) map[string]interface{} {
	return map[string]interface{}{
		"code":      string(stdErr.Code),
		"category":  errors.GetErrorCategory(stdErr.Code),
		"retryable": stdErr.Retryable,
		"details":   stdErr.Details,
	}
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = strconv.Quote(name)
	}
	return strings.Join(quoted, ", ")
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
