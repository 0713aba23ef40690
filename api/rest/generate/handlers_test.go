package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/algrv/playground/internal/generator"
	"codeberg.org/algrv/playground/internal/llm"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	result   *generator.Result
	err      error
	received *generator.Request
}

func (m *mockGenerator) Generate(_ context.Context, req generator.Request) (*generator.Result, error) {
	m.received = &req

	if m.err != nil {
		return nil, m.err
	}

	return m.result, nil
}

func setupRouter(gen ComponentGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/api/v1/generate", Handler(gen))

	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Success(t *testing.T) {
	gen := &mockGenerator{result: &generator.Result{JSX: "<A/>", CSS: ".a{}", Raw: "raw reply"}}
	router := setupRouter(gen)

	body := `{
		"prompt": "make it red",
		"chat": [
			{"role": "user", "content": "hi"},
			{"role": "ai", "content": "hello"},
			{"role": "user", "content": {"not": "text"}}
		],
		"code": {"jsx": "<B/>", "css": ""}
	}`
	w := post(router, body)

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, Response{JSX: "<A/>", CSS: ".a{}", Raw: "raw reply"}, resp)

	require.NotNil(t, gen.received)
	assert.Equal(t, "make it red", gen.received.Prompt)
	assert.Equal(t, "<B/>", gen.received.Code.JSX)
	assert.Equal(t, []generator.Turn{
		{Role: "user", Content: "hi"},
		{Role: "ai", Content: "hello"},
	}, gen.received.Chat)
}

func TestHandler_PartialResult(t *testing.T) {
	router := setupRouter(&mockGenerator{result: &generator.Result{JSX: "<A/>", Raw: "```jsx\n<A/>\n```"}})

	w := post(router, `{"prompt":"x"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"css":""`)
}

func TestHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing prompt", `{"chat":[]}`},
		{"empty prompt", `{"prompt":""}`},
		{"unknown role", `{"prompt":"x","chat":[{"role":"robot","content":"beep"}]}`},
		{"malformed json", `{"prompt":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{result: &generator.Result{}}
			w := post(setupRouter(gen), tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, gen.received)
		})
	}
}

func TestHandler_GenerationFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantDetail string
	}{
		{"missing credential", llm.ErrMissingCredential, "missing OpenRouter API key"},
		{
			"upstream status",
			&llm.UpstreamError{Kind: llm.UpstreamStatus, StatusCode: 401, Body: "Invalid credentials"},
			"status 401 - Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(setupRouter(&mockGenerator{err: tt.err}), `{"prompt":"x"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), "generation_failed")
			assert.Contains(t, w.Body.String(), tt.wantDetail)
		})
	}
}
