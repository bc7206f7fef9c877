// Package share builds journey share texts and the museum passbook.
package share

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
)

// Service defines the sharing operations
type Service interface {
	Share(ctx context.Context, userID, platform string) (*domain.SharePayload, error)
	Passbook(ctx context.Context, userID string) (*domain.Passbook, error)
}

type service struct {
	profiles      profile.Service
	provinces     []domain.Province
	defaultWallet string
}

// NewService creates the share service. defaultWallet stands in for visitors
// without a connected wallet.
func NewService(profiles profile.Service, provinces []domain.Province, defaultWallet string) Service {
	return &service{profiles: profiles, provinces: provinces, defaultWallet: defaultWallet}
}

// JourneyURL is the public page for a wallet's journey
func JourneyURL(wallet string) string {
	return domain.MuseumJourneyURL + wallet
}

// RenderText fills a platform template from a profile
func RenderText(platform string, p *domain.Profile) (string, error) {
	tmpl, ok := templates[platform]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownPlatform, platform)
	}
	nft := p.LastAdoptedCrop
	if nft == "" {
		nft = FallbackNFT
	}
	r := strings.NewReplacer(
		"{nft}", nft,
		"{level}", strconv.Itoa(p.Stats.Level),
		"{tokens}", strconv.Itoa(p.Stats.Tokens),
		"{nfts}", strconv.Itoa(p.Stats.NFTsOwned),
	)
	return r.Replace(tmpl), nil
}

// IntentURL returns the platform's share dialog URL, or "" when the platform
// only supports pasting text.
func IntentURL(platform, text, journeyURL string) string {
	switch platform {
	case PlatformTwitter:
		return TwitterIntentURL + "?text=" + escapeComponent(text) + "&url=" + escapeComponent(journeyURL)
	case PlatformFacebook:
		return FacebookSharerURL + "?u=" + escapeComponent(journeyURL) + "&quote=" + escapeComponent(text)
	default:
		return ""
	}
}

// componentUnescapes restores the characters browsers leave bare in a URI
// component, plus spaces as %20
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

func (s *service) Share(ctx context.Context, userID, platform string) (*domain.SharePayload, error) {
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	text, err := RenderText(platform, p)
	if err != nil {
		return nil, err
	}

	wallet := p.WalletAddress
	if wallet == "" {
		wallet = s.defaultWallet
	}
	journey := JourneyURL(wallet)

	return &domain.SharePayload{
		Platform:   platform,
		Text:       text,
		JourneyURL: journey,
		IntentURL:  IntentURL(platform, text, journey),
	}, nil
}

func (s *service) Passbook(ctx context.Context, userID string) (*domain.Passbook, error) {
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	allDone := len(s.provinces) > 0
	for _, province := range s.provinces {
		if !province.IsComplete(p.QuestProgress[province.ID]) {
			allDone = false
			break
		}
	}

	milestones := []domain.Milestone{
		{ID: 1, Title: "First Adoption", Description: "Adopted first seed", Completed: p.Stats.NFTsOwned >= FirstAdoptionNFTs},
		{ID: 2, Title: "Cultural Explorer", Description: "Completed 3 quests", Completed: p.QuestionsAnswered() >= ExplorerQuestions},
		{ID: 3, Title: "Seed Guardian", Description: "Own 5 NFTs", Completed: p.Stats.NFTsOwned >= GuardianNFTs},
		{ID: 4, Title: "Heritage Master", Description: "Completed all quests", Completed: allDone},
	}
	completed := 0
	for _, m := range milestones {
		if m.Completed {
			completed++
		}
	}

	return &domain.Passbook{
		UserID:              p.UserID,
		Milestones:          milestones,
		CompletedMilestones: completed,
		TotalMilestones:     len(milestones),
		VisitedSections:     p.VisitedSections,
		Sections:            slices.Clone(domain.Sections),
	}, nil
}
