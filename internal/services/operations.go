package services

import (
	"careercraft_backend/internal/genai"
	"careercraft_backend/internal/models"
)

// Operation is one entry of the closed operation table: what a request
// kind costs and which model tier serves it. Costs are fixed and declared
// here, never computed per request.
type Operation struct {
	Kind    models.OperationKind
	Cost    int
	Profile genai.ModelProfile
}

var operations = map[models.OperationKind]Operation{
	models.OpResumeGenerate:        {Kind: models.OpResumeGenerate, Cost: 2, Profile: genai.ProfileCapable},
	models.OpResumeTailor:          {Kind: models.OpResumeTailor, Cost: 2, Profile: genai.ProfileCapable},
	models.OpCoverLetter:           {Kind: models.OpCoverLetter, Cost: 2, Profile: genai.ProfileCapable},
	models.OpSOP:                   {Kind: models.OpSOP, Cost: 3, Profile: genai.ProfileCapable},
	models.OpMotivationLetter:      {Kind: models.OpMotivationLetter, Cost: 3, Profile: genai.ProfileCapable},
	models.OpStudyPlan:             {Kind: models.OpStudyPlan, Cost: 2, Profile: genai.ProfileCapable},
	models.OpFinancialLetter:       {Kind: models.OpFinancialLetter, Cost: 2, Profile: genai.ProfileCapable},
	models.OpBio:                   {Kind: models.OpBio, Cost: 1, Profile: genai.ProfileFast},
	models.OpInterviewPrep:         {Kind: models.OpInterviewPrep, Cost: 2, Profile: genai.ProfileCapable},
	models.OpATSScore:              {Kind: models.OpATSScore, Cost: 0, Profile: genai.ProfileFast},
	models.OpCommunicationAnalysis: {Kind: models.OpCommunicationAnalysis, Cost: 1, Profile: genai.ProfileFast},
	models.OpKeywordExtract:        {Kind: models.OpKeywordExtract, Cost: 0, Profile: genai.ProfileFast},
}

// OperationByKind looks up the table entry for kind.
func OperationByKind(kind models.OperationKind) (Operation, bool) {
	op, ok := operations[kind]
	return op, ok
}

// OperationCost returns the declared cost, or -1 for unknown kinds.
func OperationCost(kind models.OperationKind) int {
	op, ok := operations[kind]
	if !ok {
		return -1
	}
	return op.Cost
}

// FreeOperation reports whether kind costs nothing and is therefore
// subject to per-user rate limiting instead of metering.
func FreeOperation(kind models.OperationKind) bool {
	op, ok := operations[kind]
	return ok && op.Cost == 0
}
