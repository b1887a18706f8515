package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/core/ports/driven"
	"github.com/draftlab/scriptforge/internal/core/ports/driving"
	"github.com/draftlab/scriptforge/internal/logger"
)

// Ensure ResearchService implements the interface.
var _ driving.ResearchOrchestrator = (*ResearchService)(nil)

// termFetchCap limits how many planned terms are fetched per run, to
// stay friendly to the encyclopedia API's rate limits. Terms beyond the
// cap still appear in SearchTerms and count toward Total.
const termFetchCap = 5

// ResearchService drives the encyclopedia client across planned search
// terms. Per-term failures are recorded in the result, never fatal: a
// run always completes with whatever articles it could gather.
type ResearchService struct {
	planner driving.TermPlanner
	wiki    driven.Encyclopedia
	cache   driven.ArticleCache
}

// NewResearchService creates a research orchestrator.
func NewResearchService(
	planner driving.TermPlanner,
	wiki driven.Encyclopedia,
	cache driven.ArticleCache,
) *ResearchService {
	return &ResearchService{
		planner: planner,
		wiki:    wiki,
		cache:   cache,
	}
}

// Research plans search terms for the topic, probes whether the raw
// topic has an article, broadens the term list when it does not, and
// fetches the first terms up to the per-run cap. Cached terms are
// counted as successes without any network traffic; with force set the
// cache is bypassed and its files overwritten instead.
func (s *ResearchService) Research(ctx context.Context, topic, keyPointsText string, force bool) (*domain.ResearchResult, error) {
	logger.Section("Research")

	terms, parsed := s.planner.ProcessTopicAndKeyPoints(ctx, topic, keyPointsText)

	// Probe the raw topic. A successful probe lands in the cache, where
	// the term loop picks it up; its article is kept only so a forced
	// run does not fetch the topic twice. A failed probe means the
	// topic wording has no page of its own, so broader subjects are
	// appended to the plan.
	var probed *domain.ArticleRecord
	if force || !s.cache.Has(domain.Slugify(topic)) {
		if article, err := s.fetch(ctx, topic, force); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Info("Topic %q has no article of its own, extracting broader topics", topic)
			broader := s.planner.ExtractBroaderTopics(ctx, topic, 3)
			if len(broader) > 0 {
				before := len(terms)
				terms = dedupeTerms(append(terms, broader...))
				logger.Info("Added %d broader topics to search terms", len(terms)-before)
			}
		} else {
			probed = article
		}
	}

	result := &domain.ResearchResult{
		ID:          uuid.NewString(),
		Topic:       topic,
		KeyPoints:   parsed,
		SearchTerms: terms,
		Total:       len(terms),
	}

	logger.Info("Starting research for %d search terms", len(terms))

	for i, term := range terms {
		if i >= termFetchCap {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Info("Researching %q (%d/%d)", term, i+1, min(termFetchCap, len(terms)))

		// A forced probe already refetched the topic itself; reuse its
		// article instead of hitting the network a second time.
		if force && probed != nil && strings.EqualFold(term, topic) {
			result.Results = append(result.Results, domain.TermResult{
				Term:    term,
				Status:  domain.TermFound,
				Article: probed,
			})
			result.Successful++
			probed = nil
			continue
		}

		if !force && s.cache.Has(domain.Slugify(term)) {
			logger.Debug("Using cached article for %q", term)
			result.Results = append(result.Results, domain.TermResult{
				Term:   term,
				Status: domain.TermCached,
			})
			result.Successful++
			continue
		}

		article, err := s.fetch(ctx, term, force)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("Failed to research %q: %v", term, err)
			result.Results = append(result.Results, domain.TermResult{
				Term:   term,
				Status: domain.TermFailed,
				Err:    err.Error(),
			})
			continue
		}

		result.Results = append(result.Results, domain.TermResult{
			Term:    term,
			Status:  domain.TermFound,
			Article: article,
		})
		result.Successful++
	}

	logger.Info("Research complete: %d/%d terms successful", result.Successful, result.Total)
	return result, nil
}

// fetch routes to the force-refresh variant when the run bypasses the
// cache.
func (s *ResearchService) fetch(ctx context.Context, term string, force bool) (*domain.ArticleRecord, error) {
	if force {
		return s.wiki.RefreshArticle(ctx, term)
	}
	return s.wiki.SearchArticle(ctx, term)
}
