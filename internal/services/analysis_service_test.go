package services

import (
	"context"
	"testing"

	"careercraft_backend/internal/dto"
	"careercraft_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const communicationJSON = `{"tone":"professional","clarity_score":82,"issues":[],"overall_feedback":"Clear and direct."}`

func newAnalysisFixture(t *testing.T) (*genFixture, AnalysisService) {
	t.Helper()
	f := newGenFixture(t)
	svc := NewAnalysisService(f.svc, &fakeAnalysisRepo{store: f.store})
	return f, svc
}

func TestAnalyzeCommunication_ChargesAndStoresReport(t *testing.T) {
	f, svc := newAnalysisFixture(t)
	f.store.addUser("u1", models.PlanFree, 5)
	f.client.response = communicationJSON

	resp, err := svc.AnalyzeCommunication(context.Background(), "u1", "", &dto.CommunicationAnalysisRequest{
		Text:    "Hi team, just checking in on the launch timeline.",
		Context: "email",
	})
	require.NoError(t, err)

	// The debit must reference a stored report: a charge with no
	// artifact would be an unaccounted deduction.
	assert.Equal(t, 1, resp.CreditsCharged)
	assert.NotEmpty(t, resp.ArtifactID)
	assert.Equal(t, 4, resp.Balance)

	require.Len(t, f.store.reports, 1)
	assert.Equal(t, resp.ArtifactID, f.store.reports[0].ID)
	assert.Equal(t, "u1", f.store.reports[0].UserID)
	assert.Equal(t, -1, f.store.ledgerSum("u1"))

	report, err := svc.GetReport("u1", resp.ArtifactID)
	require.NoError(t, err)
	assert.JSONEq(t, communicationJSON, string(report.Content))
}

func TestAnalyzeCommunication_FailedGenerationStoresNothing(t *testing.T) {
	f, svc := newAnalysisFixture(t)
	f.store.addUser("u1", models.PlanFree, 5)
	f.client.response = "not json at all"

	_, err := svc.AnalyzeCommunication(context.Background(), "u1", "", &dto.CommunicationAnalysisRequest{
		Text: "Hi team, just checking in on the launch timeline.",
	})
	require.Error(t, err)

	assert.Empty(t, f.store.reports)
	assert.Equal(t, 5, f.store.users["u1"].CreditBalance)
	assert.Empty(t, f.store.txs)
}

func TestListReports_OwnerScoped(t *testing.T) {
	f, svc := newAnalysisFixture(t)
	f.store.addUser("u1", models.PlanFree, 5)
	f.store.addUser("u2", models.PlanFree, 5)
	f.client.response = communicationJSON

	_, err := svc.AnalyzeCommunication(context.Background(), "u1", "", &dto.CommunicationAnalysisRequest{
		Text: "Looking forward to your feedback on the draft.",
	})
	require.NoError(t, err)

	mine, err := svc.ListReports("u1", 1, 20)
	require.NoError(t, err)
	assert.Len(t, mine.Reports, 1)
	assert.EqualValues(t, 1, mine.Total)

	theirs, err := svc.ListReports("u2", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, theirs.Reports)
}
