package services

import (
	"testing"

	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationTableCoversEveryKind(t *testing.T) {
	kinds := []models.OperationKind{
		models.OpResumeGenerate, models.OpResumeTailor, models.OpCoverLetter,
		models.OpSOP, models.OpMotivationLetter, models.OpStudyPlan,
		models.OpFinancialLetter, models.OpBio, models.OpInterviewPrep,
		models.OpATSScore, models.OpCommunicationAnalysis, models.OpKeywordExtract,
	}

	for _, kind := range kinds {
		op, ok := OperationByKind(kind)
		require.True(t, ok, string(kind))
		assert.Equal(t, kind, op.Kind)
		assert.GreaterOrEqual(t, op.Cost, 0)
		assert.NotEmpty(t, op.Profile.Name)
	}
}

func TestOperationCosts(t *testing.T) {
	assert.Equal(t, 2, OperationCost(models.OpResumeGenerate))
	assert.Equal(t, 2, OperationCost(models.OpResumeTailor))
	assert.Equal(t, 2, OperationCost(models.OpCoverLetter))
	assert.Equal(t, 3, OperationCost(models.OpSOP))
	assert.Equal(t, 3, OperationCost(models.OpMotivationLetter))
	assert.Equal(t, 1, OperationCost(models.OpBio))
	assert.Equal(t, 0, OperationCost(models.OpATSScore))
	assert.Equal(t, 0, OperationCost(models.OpKeywordExtract))
	assert.Equal(t, 1, OperationCost(models.OpCommunicationAnalysis))
	assert.Equal(t, -1, OperationCost(models.OperationKind("nope")))
}

func TestFreeOperations(t *testing.T) {
	assert.True(t, FreeOperation(models.OpATSScore))
	assert.True(t, FreeOperation(models.OpKeywordExtract))
	assert.False(t, FreeOperation(models.OpCommunicationAnalysis))
	assert.False(t, FreeOperation(models.OpResumeGenerate))
	assert.False(t, FreeOperation(models.OperationKind("nope")))
}

func TestFastProfileForAnalysisOps(t *testing.T) {
	for _, kind := range []models.OperationKind{models.OpATSScore, models.OpKeywordExtract, models.OpCommunicationAnalysis, models.OpBio} {
		op, _ := OperationByKind(kind)
		assert.Equal(t, genai.ProfileFast.Name, op.Profile.Name, string(kind))
	}
}
