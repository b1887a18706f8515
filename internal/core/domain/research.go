package domain

// ResearchResult aggregates the outcome of one research run across all
// planned search terms. Created once per run and never mutated after.
type ResearchResult struct {
	// ID identifies the run, mostly for logging.
	ID string

	// Topic is the general topic as entered by the user.
	Topic string

	// KeyPoints holds the parsed key-point statements, bullet and
	// number markers stripped, blank lines dropped.
	KeyPoints []string

	// SearchTerms is the final ordered, case-insensitively deduplicated
	// term list. The topic is always index 0.
	SearchTerms []string

	// Results holds the per-term outcomes in the order they were
	// attempted.
	Results []TermResult

	// Successful counts terms that resolved to an article (fresh or
	// cached).
	Successful int

	// Total is the size of the search-term list, including terms beyond
	// the per-run fetch cap.
	Total int
}

// SourceArticles returns title/URL pairs for every term that produced an
// article, capped at max. Used to populate the research brief.
func (r *ResearchResult) SourceArticles(max int) []RelatedArticle {
	var articles []RelatedArticle
	for _, res := range r.Results {
		if len(articles) >= max {
			break
		}
		switch res.Status {
		case TermFound:
			if res.Article != nil {
				articles = append(articles, RelatedArticle{
					Title: res.Article.Title,
					URL:   res.Article.URL,
				})
			}
		case TermCached:
			articles = append(articles, RelatedArticle{
				Title: res.Term,
				URL:   WikipediaURL(res.Term),
			})
		}
	}
	return articles
}
