// Package guide answers visitor questions from the tour guide knowledge base.
package guide

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/BinhiHeritage_Go/internal/content"
	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// Service defines the tour guide operations
type Service interface {
	Ask(ctx context.Context, query, language string) (*domain.GuideAnswer, error)
	CropInfo(ctx context.Context, cropName, language string) (*domain.GuideAnswer, error)
	Highlights() []domain.Highlight
}

type service struct {
	guide      content.Guide
	highlights []domain.Highlight
}

// NewService creates the guide service
func NewService(guide content.Guide, highlights []domain.Highlight) Service {
	return &service{guide: guide, highlights: highlights}
}

func (s *service) Ask(ctx context.Context, query, language string) (*domain.GuideAnswer, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	lang := s.language(ctx, language)
	log := logger.FromContext(ctx)

	entry := s.match(q)
	if entry == nil {
		log.Debug(LogMsgNoMatch, "query", q)
		return &domain.GuideAnswer{
			Query:    query,
			Answer:   s.guide.Default[lang],
			Category: CategoryGeneral,
			Language: lang,
		}, nil
	}

	log.Debug(LogMsgAsked, "query", q, "key", entry.Key)
	return s.answer(query, entry, lang), nil
}

func (s *service) CropInfo(ctx context.Context, cropName, language string) (*domain.GuideAnswer, error) {
	name := strings.ToLower(cropName)
	compact := strings.ReplaceAll(name, " ", "")
	lang := s.language(ctx, language)
	for i := range s.guide.Entries {
		e := &s.guide.Entries[i]
		if strings.Contains(name, e.Key) || strings.Contains(compact, strings.ReplaceAll(e.Key, " ", "")) {
			ans := s.answer(cropName, e, lang)
			ans.Category = CategoryCrop
			return ans, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrGuideEntryNotFound, cropName)
}

func (s *service) Highlights() []domain.Highlight {
	out := make([]domain.Highlight, len(s.highlights))
	copy(out, s.highlights)
	return out
}

// match returns the first entry whose key the query contains, or whose key
// contains the query's first word.
func (s *service) match(q string) *content.GuideEntry {
	first := strings.Fields(q)[0]
	for i := range s.guide.Entries {
		e := &s.guide.Entries[i]
		if strings.Contains(q, e.Key) || strings.Contains(e.Key, first) {
			return e
		}
	}
	return nil
}

func (s *service) answer(query string, e *content.GuideEntry, lang string) *domain.GuideAnswer {
	text, ok := e.Answers[lang]
	if !ok {
		text = e.Answers[content.DefaultLanguage]
	}
	return &domain.GuideAnswer{
		Query:    query,
		Answer:   text,
		Category: Categorize(e.Key),
		Language: lang,
	}
}

func (s *service) language(ctx context.Context, language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return content.DefaultLanguage
	}
	if _, ok := s.guide.Default[lang]; !ok {
		logger.FromContext(ctx).Debug(LogMsgLanguageFell, "language", language)
		return content.DefaultLanguage
	}
	return lang
}

// Categorize classifies a knowledge base key
func Categorize(key string) string {
	for _, kw := range cropKeywords {
		if strings.Contains(key, kw) {
			return CategoryCrop
		}
	}
	for _, kw := range ritualKeywords {
		if strings.Contains(key, kw) {
			return CategoryRitual
		}
	}
	return CategoryGeneral
}
