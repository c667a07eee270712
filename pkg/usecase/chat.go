package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/civic-lab/sevadesk/pkg/domain/interfaces"
	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/civic-lab/sevadesk/pkg/domain/types"
	"github.com/civic-lab/sevadesk/pkg/service/matcher"
	"github.com/civic-lab/sevadesk/pkg/service/prompt"
	"github.com/civic-lab/sevadesk/pkg/utils/logging"
)

// DefaultProviderTimeout bounds a single completion-provider call
const DefaultProviderTimeout = 30 * time.Second

// ChatUseCase orchestrates one question/answer round: relevance
// matching, prompt composition, a single completion-provider call, and
// reference extraction. It holds only read-only state, so one instance
// serves concurrent requests without locking.
type ChatUseCase struct {
	catalog         interfaces.Catalog
	llmClient       gollem.LLMClient
	matcher         *matcher.Matcher
	providerTimeout time.Duration
}

// ChatOption is a functional option for ChatUseCase configuration
type ChatOption func(*ChatUseCase)

// WithMatcher overrides the relevance matcher
func WithMatcher(m *matcher.Matcher) ChatOption {
	return func(uc *ChatUseCase) {
		uc.matcher = m
	}
}

// WithProviderTimeout overrides the completion-provider call timeout
func WithProviderTimeout(d time.Duration) ChatOption {
	return func(uc *ChatUseCase) {
		if d > 0 {
			uc.providerTimeout = d
		}
	}
}

// NewChatUseCase creates a ChatUseCase backed by the given catalog and
// completion provider
func NewChatUseCase(catalog interfaces.Catalog, llmClient gollem.LLMClient, opts ...ChatOption) (*ChatUseCase, error) {
	if catalog == nil {
		return nil, goerr.New("catalog is required")
	}
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	uc := &ChatUseCase{
		catalog:         catalog,
		llmClient:       llmClient,
		matcher:         matcher.New(),
		providerTimeout: DefaultProviderTimeout,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc, nil
}

// CatalogSize returns the number of loaded service records
func (uc *ChatUseCase) CatalogSize() int {
	return uc.catalog.Len()
}

// ProviderConfigured reports whether a completion provider is wired
func (uc *ChatUseCase) ProviderConfigured() bool {
	return uc.llmClient != nil
}

// Search exposes the relevance matcher directly: it returns the ranked
// shortlist for a question without calling the completion provider.
func (uc *ChatUseCase) Search(question string) (model.MatchResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, goerr.Wrap(types.ErrEmptyQuestion, "search rejected")
	}
	return uc.matcher.Match(question, uc.catalog), nil
}

// Chat answers a question grounded on the catalog. An empty shortlist
// is a valid outcome and still goes to the provider with the not-found
// preamble. A provider failure wraps types.ErrCompletionProvider and
// produces no envelope.
func (uc *ChatUseCase) Chat(ctx context.Context, question string) (*model.ResponseEnvelope, error) {
	logger := logging.From(ctx)

	if strings.TrimSpace(question) == "" {
		return nil, goerr.Wrap(types.ErrEmptyQuestion, "chat rejected")
	}

	requestID := uuid.New().String()
	logger = logger.With("request_id", requestID)

	matches := uc.matcher.Match(question, uc.catalog)
	logger.Info("matched services",
		"question_len", len(question),
		"shortlist", matches.IDs(),
	)

	promptText, err := prompt.Compose(question, matches)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compose prompt")
	}

	answer, err := uc.complete(ctx, promptText)
	if err != nil {
		return nil, goerr.Wrap(types.ErrCompletionProvider, "failed to get answer from provider",
			goerr.V("request_id", requestID),
			goerr.V("cause", err.Error()),
		)
	}

	refs := extractReferences(answer, matches)
	logger.Info("generated answer", "references", refs, "answer_len", len(answer))

	return &model.ResponseEnvelope{
		RequestID:         requestID,
		Response:          answer,
		Timestamp:         time.Now().UTC(),
		ServiceReferences: refs,
	}, nil
}

// complete sends the prompt to the completion provider with an
// explicit timeout and no retry. Retry policy belongs to the caller.
func (uc *ChatUseCase) complete(ctx context.Context, promptText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.providerTimeout)
	defer cancel()

	session, err := uc.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create provider session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(promptText))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("provider returned empty response")
	}

	answer := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if answer == "" {
		return "", goerr.New("provider returned blank answer")
	}

	return answer, nil
}

// extractReferences scans the answer text for exact token occurrences
// of shortlisted record IDs. IDs the provider never mentioned are
// dropped: they were not actually used in the answer. The result keeps
// shortlist rank order.
func extractReferences(answer string, matches model.MatchResult) []types.ServiceID {
	refs := make([]types.ServiceID, 0, len(matches))
	for _, match := range matches {
		if containsToken(answer, match.Record.ID.String()) {
			refs = append(refs, match.Record.ID)
		}
	}
	return refs
}

// containsToken reports whether token occurs in text with no adjacent
// ID characters, so "service-4" does not match inside "service-41"
func containsToken(text, token string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], token)
		if idx < 0 {
			return false
		}
		idx += start

		before := idx - 1
		after := idx + len(token)
		boundedLeft := before < 0 || !isIDChar(rune(text[before]))
		boundedRight := after >= len(text) || !isIDChar(rune(text[after]))
		if boundedLeft && boundedRight {
			return true
		}

		start = idx + 1
	}
}

func isIDChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}
