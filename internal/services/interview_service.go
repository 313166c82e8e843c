package services

import (
	"context"
	"encoding/json"
	"errors"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/models"
	"careercraft_backend/internal/prompts"
	"careercraft_backend/internal/repositories"
	"careercraft_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterviewService interface {
	Prep(ctx context.Context, userID, requestKey string, req *dto.InterviewPrepRequest) (*dto.GenerationResponse, error)
	Get(userID, sessionID string) (*dto.InterviewSessionResponse, error)
	List(userID string, page, pageSize int) (*dto.InterviewListResponse, error)
	Delete(userID, sessionID string) error
}

type InterviewServiceImpl struct {
	interviewRepo repositories.InterviewRepository
	generation    GenerationService
}

func NewInterviewService(interviewRepo repositories.InterviewRepository, generation GenerationService) InterviewService {
	return &InterviewServiceImpl{
		interviewRepo: interviewRepo,
		generation:    generation,
	}
}

func checkInterviewContent(c *prompts.InterviewPrepContent) error {
	if len(c.Questions) == 0 {
		return errors.New("missing questions")
	}
	for _, q := range c.Questions {
		if q.Question == "" {
			return errors.New("empty question entry")
		}
	}
	return nil
}

func (s *InterviewServiceImpl) Prep(ctx context.Context, userID, requestKey string, req *dto.InterviewPrepRequest) (*dto.GenerationResponse, error) {
	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID:     userID,
		Kind:       models.OpInterviewPrep,
		RequestKey: requestKey,
		Prompt:     prompts.InterviewPrep(req.Background, req.TargetRole, req.Company),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, checkInterviewContent)
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			session := &models.InterviewSession{
				UserID:     userID,
				TargetRole: req.TargetRole,
				Company:    req.Company,
				Questions:  datatypes.JSON(content),
			}
			if err := s.interviewRepo.CreateTx(tx, session); err != nil {
				return "", err
			}
			return session.ID, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return toGenerationResponse(result), nil
}

func (s *InterviewServiceImpl) Get(userID, sessionID string) (*dto.InterviewSessionResponse, error) {
	session, err := s.interviewRepo.FindByID(sessionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewSessionNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toInterviewResponse(session)
	return &resp, nil
}

func (s *InterviewServiceImpl) List(userID string, page, pageSize int) (*dto.InterviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	sessions, total, err := s.interviewRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.InterviewListResponse{
		Sessions: make([]dto.InterviewSessionResponse, 0, len(sessions)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, session := range sessions {
		out.Sessions = append(out.Sessions, toInterviewResponse(&session))
	}
	return out, nil
}

func (s *InterviewServiceImpl) Delete(userID, sessionID string) error {
	if err := s.interviewRepo.Delete(sessionID, userID); err != nil {
		if errors.Is(err, repositories.ErrInterviewSessionNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func toInterviewResponse(session *models.InterviewSession) dto.InterviewSessionResponse {
	return dto.InterviewSessionResponse{
		ID:         session.ID,
		TargetRole: session.TargetRole,
		Company:    session.Company,
		Questions:  json.RawMessage(session.Questions),
		CreatedAt:  session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
