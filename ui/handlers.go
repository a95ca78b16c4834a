package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"distfit/adapters/samplefile"
	domain "distfit/domain/fit"
	"distfit/internal/analysis/fit"
	"distfit/internal/errors"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type indexPage struct {
	Numbers    string
	Error      string
	Report     template.HTML
	Evaluation *domain.Evaluation
	Families   []domain.Family
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, http.StatusOK, "index.html", indexPage{Families: domain.Families})
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Families: domain.Families}

	sample, err := a.readSubmittedSample(w, r)
	page.Numbers = r.FormValue("numbers")
	if err != nil {
		a.renderError(w, page, err)
		return
	}

	eval, err := a.svc.EvaluateSample(r.Context(), sample)
	if err != nil {
		a.renderError(w, page, err)
		return
	}

	page.Evaluation = eval
	page.Report = renderMarkdown(fit.Report(eval))
	a.renderTemplate(w, http.StatusOK, "index.html", page)
}

// readSubmittedSample takes the uploaded file when one is attached and falls
// back to the pasted numbers otherwise.
func (a *App) readSubmittedSample(w http.ResponseWriter, r *http.Request) (domain.Sample, error) {
	if a.config.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxUploadBytes)
	}
	if err := parseForm(r, a.config.MaxUploadBytes); err != nil {
		return nil, err
	}

	file, header, err := r.FormFile("sample")
	switch {
	case err == nil:
		defer file.Close()
		a.logger.Debug("analyzing upload %s (%d bytes)", header.Filename, header.Size)
		if samplefile.FormatForPath(header.Filename) == samplefile.FormatXLSX {
			return samplefile.DecodeXLSX(file)
		}
		return samplefile.DecodeText(file)
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		return samplefile.DecodeText(strings.NewReader(r.FormValue("numbers")))
	default:
		return nil, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "cannot read upload"))
	}
}

func (a *App) handleGenerate(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Families: domain.Families}

	if err := parseForm(r, a.config.MaxUploadBytes); err != nil {
		a.renderError(w, page, err)
		return
	}

	family, err := domain.ParseFamily(r.FormValue("distribution"))
	if err != nil {
		a.renderError(w, page, err)
		return
	}
	count, err := domain.ParseSize(r.FormValue("size"))
	if err != nil {
		a.renderError(w, page, err)
		return
	}
	seed, err := parseSeed(r.FormValue("seed"))
	if err != nil {
		a.renderError(w, page, err)
		return
	}

	sample, err := a.svc.GenerateSample(r.Context(), family, count, seed)
	if err != nil {
		a.renderError(w, page, err)
		return
	}

	var (
		buf         bytes.Buffer
		ext         = "csv"
		contentType = "text/csv; charset=utf-8"
	)
	if r.FormValue("format") == "xlsx" {
		ext, contentType = "xlsx", xlsxContentType
		err = samplefile.EncodeXLSX(&buf, sample)
	} else {
		err = samplefile.EncodeText(&buf, sample)
	}
	if err != nil {
		a.renderError(w, page, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="sample-%s-%d.%s"`, family, count, ext))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := io.Copy(w, &buf); err != nil {
		a.logger.Warn("download interrupted: %v", err)
	}
}

func (a *App) renderError(w http.ResponseWriter, page indexPage, err error) {
	status := errors.HTTPStatus(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}

	page.Error = err.Error()
	a.renderTemplate(w, status, "index.html", page)
}

func parseForm(r *http.Request, maxMemory int64) error {
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	err := r.ParseMultipartForm(maxMemory)
	if stderrors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "cannot parse form"))
	}
	return nil
}

func parseSeed(raw string) (*uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("seed must be a non-negative integer, got %q", raw))
	}
	return &seed, nil
}
