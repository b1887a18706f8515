package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/draftlab/scriptforge/internal/core/domain"
	"github.com/draftlab/scriptforge/internal/logger"
)

const (
	maxArticleImages = 5
	maxDossierImages = 3
	imageDescCap     = 200
)

// Image titles containing these fragments are interface chrome, not
// article illustrations.
var skipImageTitles = []string{"commons-logo", "edit-icon", "wikimedia", "disambiguation"}

// BuildDossier researches a topic and renders the result as a
// human-readable markdown dossier with images. The dossier is saved to
// the cache under "dossier-<slug>" and also returned.
func (c *Client) BuildDossier(ctx context.Context, topic string) (string, error) {
	article, err := c.SearchArticle(ctx, topic)
	if err != nil {
		return "", err
	}

	images := c.extractImages(ctx, article.Title)
	md := renderDossier(article, images)

	slug := "dossier-" + domain.Slugify(topic)
	if c.cache.Has(slug) {
		logger.Info("dossier already cached, skipping: %s", slug)
		return md, nil
	}
	if err := c.cache.Save(slug, md, false); err != nil {
		logger.Error("saving dossier %s: %v", slug, err)
	}

	return md, nil
}

// renderDossier lays out the article record as the dossier document.
func renderDossier(article *domain.ArticleRecord, images []domain.ArticleImage) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Research Dossier: %s\n\n", article.Title)

	if len(images) > 0 {
		desc := images[0].Description
		if desc == "" {
			desc = article.Title
		}
		fmt.Fprintf(&sb, "![%s](%s)\n", article.Title, images[0].URL)
		fmt.Fprintf(&sb, "*%s*\n\n", desc)
	}

	fmt.Fprintf(&sb, "**Source:** [%s](%s)\n\n", article.Title, article.URL)
	sb.WriteString("---\n\n")

	sb.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&sb, "%s\n\n", article.Summary)

	if len(article.KeyFacts) > 0 {
		sb.WriteString("## Key Facts & Figures\n\n")
		for _, fact := range article.KeyFacts {
			if clean := cleanFactForDisplay(fact); clean != "" {
				fmt.Fprintf(&sb, "• %s\n", clean)
			}
		}
		sb.WriteString("\n")
	}

	if len(article.Sections) > 0 {
		sb.WriteString("## Detailed Analysis\n\n")
		sections := article.Sections
		if len(sections) > 4 {
			sections = sections[:4]
		}
		for _, section := range sections {
			fmt.Fprintf(&sb, "### %s\n\n", section.Heading)
			fmt.Fprintf(&sb, "%s\n\n", section.Content)
		}
	}

	if len(images) > 1 {
		sb.WriteString("## Visual References\n\n")
		extra := images[1:]
		if len(extra) > maxDossierImages-1 {
			extra = extra[:maxDossierImages-1]
		}
		for _, img := range extra {
			desc := img.Description
			if desc == "" {
				desc = "Image"
			}
			fmt.Fprintf(&sb, "![%s](%s)\n", desc, img.URL)
			if img.Description != "" {
				fmt.Fprintf(&sb, "*%s*\n\n", img.Description)
			}
		}
	}

	if len(article.Related) > 0 {
		sb.WriteString("## Related Research Areas\n\n")
		for _, rel := range article.Related {
			fmt.Fprintf(&sb, "### [%s](%s)\n", rel.Title, rel.URL)
			if rel.Summary != "" {
				summary := rel.Summary
				if len(summary) > 200 {
					summary = summary[:200]
				}
				fmt.Fprintf(&sb, "%s...\n\n", summary)
			}
		}
	}

	sb.WriteString("## Sources & References\n\n")
	for i, source := range article.Sources {
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, source, source)
	}

	fmt.Fprintf(&sb, "\n---\n*Generated on %s*\n", time.Now().Format("January 2, 2006"))

	return sb.String()
}

// extractImages lists up to 5 content images for an article, resolving
// each to a renderable URL with description. Image failures degrade to
// fewer images, never to an error.
func (c *Client) extractImages(ctx context.Context, title string) []domain.ArticleImage {
	body, err := c.get(ctx, url.Values{
		"action":  {"query"},
		"format":  {"json"},
		"titles":  {title},
		"prop":    {"images"},
		"imlimit": {"10"},
	})
	if err != nil {
		logger.Warn("listing images for %q: %v", title, err)
		return nil
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Warn("decoding image list for %q: %v", title, err)
		return nil
	}

	page, ok := firstPage(resp.Query.Pages)
	if !ok {
		return nil
	}

	var images []domain.ArticleImage
	for _, img := range page.Images {
		if len(images) == maxArticleImages {
			break
		}
		if skipImage(img.Title) {
			continue
		}
		if info := c.imageDetails(ctx, img.Title); info != nil {
			images = append(images, *info)
		}
	}
	return images
}

// imageDetails resolves one image title to its URL and description.
func (c *Client) imageDetails(ctx context.Context, imageTitle string) *domain.ArticleImage {
	body, err := c.get(ctx, url.Values{
		"action":     {"query"},
		"format":     {"json"},
		"titles":     {imageTitle},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|extmetadata"},
		"iiurlwidth": {"800"},
	})
	if err != nil {
		logger.Debug("image info for %q: %v", imageTitle, err)
		return nil
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Debug("decoding image info for %q: %v", imageTitle, err)
		return nil
	}

	page, ok := firstPage(resp.Query.Pages)
	if !ok || len(page.ImageInfo) == 0 {
		return nil
	}

	info := page.ImageInfo[0]
	imageURL := info.ThumbURL
	if imageURL == "" {
		imageURL = info.URL
	}

	image := &domain.ArticleImage{
		URL:   imageURL,
		Title: imageTitle,
	}
	if meta, ok := info.ExtMetadata["ImageDescription"]; ok {
		desc := tagStrip.ReplaceAllString(meta.Value, "")
		if len(desc) > imageDescCap {
			desc = desc[:imageDescCap] + "..."
		}
		image.Description = desc
	}
	return image
}

func skipImage(imageTitle string) bool {
	lower := strings.ToLower(imageTitle)
	for _, skip := range skipImageTitles {
		if strings.Contains(lower, skip) {
			return true
		}
	}
	return false
}
