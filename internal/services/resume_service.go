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

type ResumeService interface {
	Generate(ctx context.Context, userID, requestKey string, req *dto.GenerateResumeRequest) (*dto.GenerationResponse, error)
	Tailor(ctx context.Context, userID, requestKey, resumeID string, req *dto.TailorResumeRequest) (*dto.GenerationResponse, error)
	Get(userID, resumeID string) (*dto.ResumeResponse, error)
	List(userID string, page, pageSize int) (*dto.ResumeListResponse, error)
	Update(userID, resumeID string, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error)
	Delete(userID, resumeID string) error
	Versions(userID, resumeID string) ([]dto.ResumeVersionResponse, error)
	GetTailored(userID, resumeID, tailoredID string) (*dto.TailoredResumeResponse, error)
}

type ResumeServiceImpl struct {
	resumeRepo repositories.ResumeRepository
	generation GenerationService
}

func NewResumeService(resumeRepo repositories.ResumeRepository, generation GenerationService) ResumeService {
	return &ResumeServiceImpl{
		resumeRepo: resumeRepo,
		generation: generation,
	}
}

func checkResumeContent(c *prompts.ResumeContent) error {
	if c.Summary == "" {
		return errors.New("missing summary")
	}
	if len(c.Experience) == 0 && len(c.Education) == 0 {
		return errors.New("missing experience and education")
	}
	return nil
}

func (s *ResumeServiceImpl) Generate(ctx context.Context, userID, requestKey string, req *dto.GenerateResumeRequest) (*dto.GenerationResponse, error) {
	source, _ := json.Marshal(req)

	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID:     userID,
		Kind:       models.OpResumeGenerate,
		RequestKey: requestKey,
		Prompt:     prompts.ResumeGenerate(req.ProfileText, req.TargetRole),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, checkResumeContent)
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			resume := &models.Resume{
				UserID:      userID,
				Title:       req.Title,
				Content:     datatypes.JSON(content),
				SourceInput: datatypes.JSON(source),
			}
			if err := s.resumeRepo.CreateTx(tx, resume); err != nil {
				return "", err
			}
			if err := s.resumeRepo.SnapshotVersionTx(tx, resume.ID, content, "initial"); err != nil {
				return "", err
			}
			return resume.ID, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return toGenerationResponse(result), nil
}

func (s *ResumeServiceImpl) Tailor(ctx context.Context, userID, requestKey, resumeID string, req *dto.TailorResumeRequest) (*dto.GenerationResponse, error) {
	base, err := s.resumeRepo.FindByID(resumeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID:     userID,
		Kind:       models.OpResumeTailor,
		RequestKey: requestKey,
		Prompt:     prompts.ResumeTailor(string(base.Content), req.JobDescription),
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, checkResumeContent)
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			var parsed prompts.ResumeContent
			_ = json.Unmarshal(content, &parsed)

			var matchNotes datatypes.JSON
			if parsed.MatchNotes != nil {
				raw, _ := json.Marshal(parsed.MatchNotes)
				matchNotes = datatypes.JSON(raw)
			}

			tailored := &models.TailoredResume{
				UserID:         userID,
				BaseResumeID:   base.ID,
				JobDescription: req.JobDescription,
				JobTitle:       req.JobTitle,
				Company:        req.Company,
				Content:        datatypes.JSON(content),
				MatchNotes:     matchNotes,
			}
			if err := s.resumeRepo.CreateTailoredTx(tx, tailored); err != nil {
				return "", err
			}
			return tailored.ID, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return toGenerationResponse(result), nil
}

func (s *ResumeServiceImpl) Get(userID, resumeID string) (*dto.ResumeResponse, error) {
	resume, err := s.resumeRepo.FindByID(resumeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toResumeResponse(resume)
	return &resp, nil
}

func (s *ResumeServiceImpl) List(userID string, page, pageSize int) (*dto.ResumeListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	resumes, total, err := s.resumeRepo.FindByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.ResumeListResponse{
		Resumes:  make([]dto.ResumeResponse, 0, len(resumes)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for _, resume := range resumes {
		out.Resumes = append(out.Resumes, toResumeResponse(&resume))
	}
	return out, nil
}

func (s *ResumeServiceImpl) Update(userID, resumeID string, req *dto.UpdateResumeRequest) (*dto.ResumeResponse, error) {
	resume, err := s.resumeRepo.FindByID(resumeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Title != "" {
		resume.Title = req.Title
	}
	if len(req.Content) > 0 {
		if !json.Valid(req.Content) {
			return nil, apperrors.NewBadRequestError("content must be valid JSON")
		}
		resume.Content = datatypes.JSON(req.Content)
	}

	if err := s.resumeRepo.Update(resume); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := toResumeResponse(resume)
	return &resp, nil
}

func (s *ResumeServiceImpl) Delete(userID, resumeID string) error {
	if err := s.resumeRepo.Delete(resumeID, userID); err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ResumeServiceImpl) Versions(userID, resumeID string) ([]dto.ResumeVersionResponse, error) {
	versions, err := s.resumeRepo.FindVersions(resumeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ResumeVersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.ResumeVersionResponse{
			ID:        v.ID,
			Version:   v.Version,
			Label:     v.Label,
			Content:   json.RawMessage(v.Content),
			CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return out, nil
}

func (s *ResumeServiceImpl) GetTailored(userID, resumeID, tailoredID string) (*dto.TailoredResumeResponse, error) {
	tailored, err := s.resumeRepo.FindTailoredByID(tailoredID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTailoredResumeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if tailored.BaseResumeID != resumeID {
		return nil, apperrors.ErrNotFound(repositories.ErrTailoredResumeNotFound)
	}

	return &dto.TailoredResumeResponse{
		ID:           tailored.ID,
		BaseResumeID: tailored.BaseResumeID,
		JobTitle:     tailored.JobTitle,
		Company:      tailored.Company,
		Content:      json.RawMessage(tailored.Content),
		MatchNotes:   json.RawMessage(tailored.MatchNotes),
		CreatedAt:    tailored.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}

func toResumeResponse(resume *models.Resume) dto.ResumeResponse {
	return dto.ResumeResponse{
		ID:        resume.ID,
		Title:     resume.Title,
		Content:   json.RawMessage(resume.Content),
		CreatedAt: resume.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: resume.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toGenerationResponse(result *ExecuteResult) *dto.GenerationResponse {
	return &dto.GenerationResponse{
		ArtifactID:     result.ArtifactID,
		Content:        result.Content,
		CreditsCharged: result.CreditsCharged,
		Balance:        result.Balance,
		Replayed:       result.Replayed,
	}
}
