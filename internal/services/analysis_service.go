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

// AnalysisService covers the analysis operations. ATS scoring and keyword
// extraction are free and return the result without storing anything;
// communication analysis is debited, so its result is persisted as a
// report artifact and can be retrieved later.
type AnalysisService interface {
	ATSScore(ctx context.Context, userID string, req *dto.ATSScoreRequest) (*dto.GenerationResponse, error)
	ExtractKeywords(ctx context.Context, userID string, req *dto.KeywordExtractRequest) (*dto.GenerationResponse, error)
	AnalyzeCommunication(ctx context.Context, userID, requestKey string, req *dto.CommunicationAnalysisRequest) (*dto.GenerationResponse, error)
	GetReport(userID, reportID string) (*dto.CommunicationReportResponse, error)
	ListReports(userID string, page, pageSize int) (*dto.CommunicationReportListResponse, error)
}

type AnalysisServiceImpl struct {
	generation   GenerationService
	analysisRepo repositories.AnalysisRepository
}

func NewAnalysisService(generation GenerationService, analysisRepo repositories.AnalysisRepository) AnalysisService {
	return &AnalysisServiceImpl{
		generation:   generation,
		analysisRepo: analysisRepo,
	}
}

func (s *AnalysisServiceImpl) ATSScore(ctx context.Context, userID string, req *dto.ATSScoreRequest) (*dto.GenerationResponse, error) {
	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID: userID,
		Kind:   models.OpATSScore,
		Prompt: prompts.ATSScore(req.ResumeText, req.JobDescription),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, func(c *prompts.ATSScoreContent) error {
				if c.Score < 0 || c.Score > 100 {
					return errors.New("score out of range")
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
	})
	if err != nil {
		return nil, err
	}
	return toGenerationResponse(result), nil
}

func (s *AnalysisServiceImpl) ExtractKeywords(ctx context.Context, userID string, req *dto.KeywordExtractRequest) (*dto.GenerationResponse, error) {
	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID: userID,
		Kind:   models.OpKeywordExtract,
		Prompt: prompts.KeywordExtract(req.JobDescription),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, func(c *prompts.KeywordContent) error {
				if len(c.HardSkills) == 0 && len(c.SoftSkills) == 0 && len(c.Qualifications) == 0 {
					return errors.New("no keywords extracted")
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
	})
	if err != nil {
		return nil, err
	}
	return toGenerationResponse(result), nil
}

func (s *AnalysisServiceImpl) AnalyzeCommunication(ctx context.Context, userID, requestKey string, req *dto.CommunicationAnalysisRequest) (*dto.GenerationResponse, error) {
	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID:     userID,
		Kind:       models.OpCommunicationAnalysis,
		RequestKey: requestKey,
		Prompt:     prompts.CommunicationAnalysis(req.Text, req.Context),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, func(c *prompts.CommunicationContent) error {
				if c.OverallFeedback == "" {
					return errors.New("missing overall feedback")
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			report := &models.CommunicationReport{
				UserID:     userID,
				Context:    req.Context,
				SourceText: req.Text,
				Content:    datatypes.JSON(content),
			}
			if err := s.analysisRepo.CreateReportTx(tx, report); err != nil {
				return "", err
			}
			return report.ID, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return toGenerationResponse(result), nil
}

func (s *AnalysisServiceImpl) GetReport(userID, reportID string) (*dto.CommunicationReportResponse, error) {
	report, err := s.analysisRepo.FindReportByID(reportID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toReportResponse(report)
	return &resp, nil
}

func (s *AnalysisServiceImpl) ListReports(userID string, page, pageSize int) (*dto.CommunicationReportListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reports, total, err := s.analysisRepo.FindReportsByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.CommunicationReportListResponse{
		Reports:  make([]dto.CommunicationReportResponse, 0, len(reports)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, report := range reports {
		out.Reports = append(out.Reports, toReportResponse(&report))
	}
	return out, nil
}

func toReportResponse(report *models.CommunicationReport) dto.CommunicationReportResponse {
	return dto.CommunicationReportResponse{
		ID:        report.ID,
		Context:   report.Context,
		Content:   json.RawMessage(report.Content),
		CreatedAt: report.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
