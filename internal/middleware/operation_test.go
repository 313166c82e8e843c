package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"careercraft_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestOperationMiddlewareAnnotatesRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got models.OperationKind
	router.POST("/generate", OperationMiddleware(models.OpResumeGenerate), func(c *gin.Context) {
		got = GetOperationKind(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate", nil))

	assert.Equal(t, models.OpResumeGenerate, got)
}

func TestOperationFromParamAnnotatesKnownKinds(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var got models.OperationKind
	router.POST("/documents/generate/:kind", OperationFromParam("kind"), func(c *gin.Context) {
		got = GetOperationKind(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/documents/generate/cover_letter", nil))
	assert.Equal(t, models.OpCoverLetter, got)

	got = ""
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/documents/generate/nonsense", nil))
	assert.Empty(t, got, "unknown kinds are left unannotated")
}

func TestGetOperationKindDefaultsToEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetOperationKind(c))
}
