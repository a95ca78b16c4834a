package ui

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distfit/adapters/samplefile"
	"distfit/app"
	domain "distfit/domain/fit"
	"distfit/internal/config"
)

func newTestApp(t *testing.T, maxUpload int64) http.Handler {
	t.Helper()
	svc := app.NewEvaluationService(samplefile.NewStore(nil), nil, nil)
	a, err := NewApp(svc, config.UIConfig{Port: "0", MaxUploadBytes: maxUpload}, nil)
	require.NoError(t, err)
	return a.Handler()
}

func postForm(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestApp(t, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/analyze"`)
	assert.Contains(t, rec.Body.String(), `<option value="normal">`)
}

func TestAnalyzePastedNumbers(t *testing.T) {
	rec := postForm(newTestApp(t, 1<<20), "/analyze", url.Values{"numbers": {"5, 5, 5, 5"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-decision="none"`)
	assert.Contains(t, body, "<h2")
	assert.Contains(t, body, "not evaluable")
}

func TestAnalyzeUploadedFile(t *testing.T) {
	sample, err := app.NewEvaluationService(nil, nil, nil).GenerateSample(t.Context(), domain.FamilyNormal, 800, ptr(uint64(3)))
	require.NoError(t, err)
	var csv bytes.Buffer
	require.NoError(t, samplefile.EncodeText(&csv, sample))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("sample", "muestra.csv")
	require.NoError(t, err)
	_, err = part.Write(csv.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestApp(t, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "800 values")
	assert.Contains(t, rec.Body.String(), "Chi-square p-value")
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	h := newTestApp(t, 1<<20)

	rec := postForm(h, "/analyze", url.Values{"numbers": {"1, 2, <script>"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="error"`)
	assert.NotContains(t, rec.Body.String(), "<script>")

	rec = postForm(h, "/analyze", url.Values{"numbers": {""}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	rec := postForm(newTestApp(t, 64), "/analyze", url.Values{"numbers": {strings.Repeat("1,", 200)}})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGenerateDownload(t *testing.T) {
	h := newTestApp(t, 0)
	form := url.Values{"distribution": {"uniforme"}, "size": {"50"}, "seed": {"8"}}

	first := postForm(h, "/generate", form)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "text/csv; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Contains(t, first.Header().Get("Content-Disposition"), `filename="sample-uniform-50.csv"`)

	body := first.Body.String()
	sample, err := samplefile.DecodeText(strings.NewReader(body))
	require.NoError(t, err)
	assert.Len(t, sample, 50)

	second := postForm(h, "/generate", form)
	assert.Equal(t, body, second.Body.String())
}

func TestGenerateWorkbook(t *testing.T) {
	rec := postForm(newTestApp(t, 0), "/generate", url.Values{"distribution": {"normal"}, "size": {"30"}, "format": {"xlsx"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))

	sample, err := samplefile.DecodeXLSX(rec.Body)
	require.NoError(t, err)
	assert.Len(t, sample, 30)
}

func TestGenerateValidation(t *testing.T) {
	h := newTestApp(t, 0)
	for _, form := range []url.Values{
		{"distribution": {"normal"}, "size": {"0"}},
		{"distribution": {"normal"}, "size": {"many"}},
		{"distribution": {"gamma"}, "size": {"10"}},
		{"distribution": {"normal"}, "size": {"10"}, "seed": {"-1"}},
		{"distribution": {"uniform"}, "size": {"400000000000"}},
	} {
		rec := postForm(h, "/generate", form)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "form %v", form)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	}
}

func ptr[T any](v T) *T { return &v }
