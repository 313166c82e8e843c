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

type DocumentService interface {
	Generate(ctx context.Context, userID, requestKey string, kind models.DocumentKind, req *dto.GenerateDocumentRequest) (*dto.GenerationResponse, error)
	Get(userID, documentID string) (*dto.DocumentResponse, error)
	List(userID string, kind models.DocumentKind, page, pageSize int) (*dto.DocumentListResponse, error)
	Delete(userID, documentID string) error
}

type DocumentServiceImpl struct {
	documentRepo repositories.DocumentRepository
	generation   GenerationService
}

func NewDocumentService(documentRepo repositories.DocumentRepository, generation GenerationService) DocumentService {
	return &DocumentServiceImpl{
		documentRepo: documentRepo,
		generation:   generation,
	}
}

func buildDocumentPrompt(kind models.DocumentKind, req *dto.GenerateDocumentRequest) string {
	switch kind {
	case models.DocCoverLetter:
		return prompts.CoverLetter(req.Background, req.Target)
	case models.DocSOP:
		return prompts.SOP(req.Background, req.Target)
	case models.DocMotivationLetter:
		return prompts.MotivationLetter(req.Background, req.Target)
	case models.DocStudyPlan:
		return prompts.StudyPlan(req.Background, req.Target)
	case models.DocFinancialLetter:
		return prompts.FinancialLetter(req.Background, req.Target)
	case models.DocBio:
		return prompts.Bio(req.Background, req.Tone)
	default:
		return ""
	}
}

func checkDocumentContent(c *prompts.DocumentContent) error {
	if c.Body == "" {
		return errors.New("missing body")
	}
	return nil
}

func (s *DocumentServiceImpl) Generate(ctx context.Context, userID, requestKey string, kind models.DocumentKind, req *dto.GenerateDocumentRequest) (*dto.GenerationResponse, error) {
	if !kind.Valid() {
		return nil, apperrors.ErrInvalidOperation("documents", "Unknown document kind")
	}

	prompt := buildDocumentPrompt(kind, req)
	source, _ := json.Marshal(req)

	result, err := s.generation.Execute(ctx, ExecuteRequest{
		UserID:     userID,
		Kind:       kind.OperationKind(),
		RequestKey: requestKey,
		Prompt:     prompt,
		Parse: func(raw string) (json.RawMessage, error) {
			content, err := genai.ParseStructured(raw, checkDocumentContent)
			if err != nil {
				return nil, err
			}
			return json.Marshal(content)
		},
		Persist: func(tx *gorm.DB, content json.RawMessage) (string, error) {
			doc := &models.Document{
				UserID:      userID,
				Kind:        kind,
				Title:       req.Title,
				Content:     datatypes.JSON(content),
				SourceInput: datatypes.JSON(source),
			}
			if err := s.documentRepo.CreateTx(tx, doc); err != nil {
				return "", err
			}
			return doc.ID, nil
		},
	})
	if err != nil {
		return nil, err
	}

	return toGenerationResponse(result), nil
}

func (s *DocumentServiceImpl) Get(userID, documentID string) (*dto.DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(documentID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := toDocumentResponse(doc)
	return &resp, nil
}

func (s *DocumentServiceImpl) List(userID string, kind models.DocumentKind, page, pageSize int) (*dto.DocumentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	if kind != "" && !kind.Valid() {
		return nil, apperrors.NewBadRequestError("unknown document kind filter")
	}

	docs, total, err := s.documentRepo.FindByUser(userID, kind, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := &dto.DocumentListResponse{
		Documents: make([]dto.DocumentResponse, 0, len(docs)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}
	for _, doc := range docs {
		out.Documents = append(out.Documents, toDocumentResponse(&doc))
	}
	return out, nil
}

func (s *DocumentServiceImpl) Delete(userID, documentID string) error {
	if err := s.documentRepo.Delete(documentID, userID); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func toDocumentResponse(doc *models.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:        doc.ID,
		Kind:      string(doc.Kind),
		Title:     doc.Title,
		Content:   json.RawMessage(doc.Content),
		CreatedAt: doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
