// Package quest runs the province trivia quests. Progress per province is a
// counter of correctly answered questions stored on the visitor's profile.
package quest

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/profile"
	"github.com/osse101/BinhiHeritage_Go/internal/rewards"
)

// errNoChange aborts the profile save after a wrong answer
var errNoChange = errors.New("no change")

// Service defines the quest operations
type Service interface {
	List(ctx context.Context, userID string) ([]domain.ProvinceView, error)
	Current(ctx context.Context, userID, provinceID string) (*domain.CurrentQuestion, error)
	Answer(ctx context.Context, userID, provinceID string, option int) (*domain.AnswerResult, error)
}

type service struct {
	provinces []domain.Province
	profiles  profile.Service
	engine    *rewards.Engine
	publisher event.Publisher
}

// NewService creates a quest service over the given provinces
func NewService(provinces []domain.Province, profiles profile.Service, engine *rewards.Engine, publisher event.Publisher) Service {
	return &service{
		provinces: provinces,
		profiles:  profiles,
		engine:    engine,
		publisher: publisher,
	}
}

func (s *service) province(id string) (domain.Province, error) {
	for _, p := range s.provinces {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Province{}, fmt.Errorf("%w: %q", domain.ErrProvinceNotFound, id)
}

func (s *service) List(ctx context.Context, userID string) ([]domain.ProvinceView, error) {
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProvinceView, len(s.provinces))
	for i, province := range s.provinces {
		progress := p.QuestProgress[province.ID]
		out[i] = domain.ProvinceView{
			Province:      province,
			QuestionCount: len(province.Questions),
			Progress:      progress,
			Completed:     province.IsComplete(progress),
		}
	}
	return out, nil
}

func (s *service) Current(ctx context.Context, userID, provinceID string) (*domain.CurrentQuestion, error) {
	province, err := s.province(provinceID)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := p.QuestProgress[province.ID]
	if province.IsComplete(progress) {
		return nil, fmt.Errorf("%w: %s", domain.ErrQuestCompleted, province.Name)
	}
	return &domain.CurrentQuestion{
		ProvinceID:    province.ID,
		Index:         progress,
		QuestionCount: len(province.Questions),
		Question:      province.Questions[progress],
	}, nil
}

// Answer evaluates option against the province's current question. A wrong
// answer leaves the profile untouched.
func (s *service) Answer(ctx context.Context, userID, provinceID string, option int) (*domain.AnswerResult, error) {
	province, err := s.province(provinceID)
	if err != nil {
		return nil, err
	}

	var (
		result  domain.AnswerResult
		outcome rewards.Outcome
	)
	_, err = s.profiles.Update(ctx, userID, func(p *domain.Profile) error {
		progress := p.QuestProgress[province.ID]
		if province.IsComplete(progress) {
			return fmt.Errorf("%w: %s", domain.ErrQuestCompleted, province.Name)
		}
		q := province.Questions[progress]
		if option < 0 || option >= len(q.Options) {
			return fmt.Errorf("%w: option %d of %d", domain.ErrInvalidAnswer, option, len(q.Options))
		}

		result = domain.AnswerResult{
			ProvinceID:    province.ID,
			QuestionID:    q.ID,
			Correct:       option == q.Answer,
			CorrectOption: q.Answer,
			Explanation:   q.Explanation,
			Progress:      progress,
			QuestionCount: len(province.Questions),
		}
		if !result.Correct {
			return errNoChange
		}

		progress++
		p.QuestProgress[province.ID] = progress
		outcome = s.engine.ApplyCorrectAnswer(p.Stats)
		if province.IsComplete(progress) {
			outcome = outcome.Merge(s.engine.ApplyProvinceCompletion(outcome.Stats, province.Badge))
			result.Completed = true
		}
		p.Stats = outcome.Stats
		result.Progress = progress
		result.Rewards = outcome.Summary()
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		return nil, err
	}

	s.publish(ctx, userID, province, result, outcome)
	return &result, nil
}

func (s *service) publish(ctx context.Context, userID string, province domain.Province, result domain.AnswerResult, outcome rewards.Outcome) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgAnswerRecorded, "user_id", userID, "province", province.ID, "correct", result.Correct, "progress", result.Progress)

	if err := s.publisher.Publish(ctx, event.NewQuestAnsweredEvent(event.QuestAnsweredPayloadV1{
		UserID:     userID,
		ProvinceID: province.ID,
		QuestionID: result.QuestionID,
		Correct:    result.Correct,
		Progress:   result.Progress,
	})); err != nil {
		log.Warn(LogMsgPublishFailed, "type", event.QuestAnswered, "error", err)
	}
	if !result.Correct {
		return
	}

	if result.Completed {
		log.Info(LogMsgProvinceCompleted, "user_id", userID, "province", province.ID)
		if err := s.publisher.Publish(ctx, event.NewQuestCompletedEvent(event.QuestCompletedPayloadV1{
			UserID:       userID,
			ProvinceID:   province.ID,
			ProvinceName: province.Name,
			Badge:        province.Badge,
		})); err != nil {
			log.Warn(LogMsgPublishFailed, "type", event.QuestCompleted, "error", err)
		}
	}
	rewards.PublishOutcome(ctx, s.publisher, userID, rewards.SourceQuest, outcome)
}
