package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/de-tools/fin-atlas/pkg/models/api"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/de-tools/fin-atlas/pkg/services/assessment"
	"github.com/de-tools/fin-atlas/pkg/services/config"
	"github.com/de-tools/fin-atlas/pkg/services/ingest"
	"github.com/rs/zerolog"
)

const (
	defaultMaxUploadBytes = 10 << 20
	uploadField           = "file"

	errBadRequest     = "bad_request"
	errUnknownProfile = "unknown_profile"
	errInternal       = "internal_error"
)

type Handler struct {
	profiles       config.Registry
	decoders       ingest.Registry
	maxUploadBytes int64
	defaultProfile string
}

type Options struct {
	MaxUploadBytes int64
	DefaultProfile string
}

func NewHandler(profiles config.Registry, decoders ingest.Registry, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.DefaultProfile == "" {
		opts.DefaultProfile = config.DefaultProfile
	}
	return &Handler{
		profiles:       profiles,
		decoders:       decoders,
		maxUploadBytes: opts.MaxUploadBytes,
		defaultProfile: opts.DefaultProfile,
	}
}

// Assess scores an uploaded ledger.
func (h *Handler) Assess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	table, filename, err := h.readUpload(w, r)
	if err != nil {
		logger.Warn().Err(err).Msg("rejected upload")
		writeError(w, r, http.StatusBadRequest, api.Error{Error: errBadRequest, Message: err.Error()})
		return
	}

	profile := r.FormValue("profile")
	if profile == "" {
		profile = h.defaultProfile
	}
	settings, err := h.profiles.GetSettings(ctx, profile)
	if err != nil {
		if errors.Is(err, config.ErrProfileNotFound) {
			writeError(w, r, http.StatusBadRequest, api.Error{Error: errUnknownProfile, Message: err.Error()})
			return
		}
		logger.Error().Err(err).Str("profile", profile).Msg("failed to load profile")
		writeError(w, r, http.StatusInternalServerError, api.Error{Error: errInternal, Message: "failed to load profile"})
		return
	}

	hints := domain.ColumnHints{
		Revenue:  r.FormValue("revenue_column"),
		Expense:  r.FormValue("expense_column"),
		Cashflow: r.FormValue("cashflow_column"),
	}

	result, err := assessment.Assess(ctx, table, hints, settings)
	if err != nil {
		h.writeAssessmentError(w, r, filename, err)
		return
	}

	logger.Info().
		Str("filename", filename).
		Str("profile", profile).
		Int("health_score", result.HealthScore).
		Msg("assessment completed")

	writeJSON(w, r, http.StatusOK, api.FromAssessment(result))
}

// Upload parses an uploaded ledger and returns its shape and first records.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	table, filename, err := h.readUpload(w, r)
	if err != nil {
		logger.Warn().Err(err).Msg("rejected upload")
		writeError(w, r, http.StatusBadRequest, api.Error{Error: errBadRequest, Message: err.Error()})
		return
	}
	if table.Len() == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, api.Error{
			Error:   string(assessment.KindEmptyDataset),
			Message: assessment.ErrEmptyDataset.Error(),
		})
		return
	}

	logger.Debug().Str("filename", filename).Int("rows", table.Len()).Msg("upload parsed")
	writeJSON(w, r, http.StatusOK, api.FromPreview(ingest.Preview(table, ingest.DefaultPreviewRows)))
}

// ListProfiles returns the scoring profiles by name with their extra rule ids.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	names, err := h.profiles.GetProfiles(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list profiles")
		writeError(w, r, http.StatusInternalServerError, api.Error{Error: errInternal, Message: "failed to list profiles"})
		return
	}
	names = slices.Clone(names)
	slices.Sort(names)

	response := make([]api.Profile, 0, len(names))
	for _, name := range names {
		settings, err := h.profiles.GetSettings(ctx, name)
		if err != nil {
			logger.Error().Err(err).Str("profile", name).Msg("failed to load profile")
			writeError(w, r, http.StatusInternalServerError, api.Error{Error: errInternal, Message: "failed to load profile " + name})
			return
		}
		ruleIDs := []string{}
		for _, rule := range settings.Rules.Rules() {
			ruleIDs = append(ruleIDs, rule.ID)
		}
		response = append(response, api.Profile{Name: name, Rules: ruleIDs})
	}

	writeJSON(w, r, http.StatusOK, response)
}

// readUpload reads the multipart "file" field in memory and decodes it by extension.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (domain.Table, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.Table{}, "", fmt.Errorf("request too large (max %d MB)", h.maxUploadBytes>>20)
		}
		return domain.Table{}, "", fmt.Errorf("failed to parse form: %w", err)
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return domain.Table{}, "", fmt.Errorf("failed to retrieve file from request, ensure the %q field is used", uploadField)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Table{}, header.Filename, fmt.Errorf("failed to read upload: %w", err)
	}

	format, err := ingest.ValidateContent(header.Filename, data)
	if err != nil {
		return domain.Table{}, header.Filename, err
	}

	table, err := h.decoders.Decode(format, bytes.NewReader(data))
	if err != nil {
		return domain.Table{}, header.Filename, fmt.Errorf("failed to parse %s: %w", header.Filename, err)
	}
	return table, header.Filename, nil
}

func (h *Handler) writeAssessmentError(w http.ResponseWriter, r *http.Request, filename string, err error) {
	logger := zerolog.Ctx(r.Context())

	kind := assessment.KindOf(err)
	if kind == "" {
		logger.Error().Err(err).Str("filename", filename).Msg("assessment failed")
		writeError(w, r, http.StatusInternalServerError, api.Error{Error: errInternal, Message: "assessment failed"})
		return
	}

	body := api.Error{Error: string(kind), Message: err.Error()}
	var missing *assessment.MissingColumnError
	if errors.As(err, &missing) {
		for _, role := range missing.Roles {
			body.MissingRoles = append(body.MissingRoles, string(role))
		}
		body.AvailableColumns = missing.Available
	}

	logger.Warn().Err(err).Str("filename", filename).Str("kind", string(kind)).Msg("assessment rejected")
	writeError(w, r, http.StatusUnprocessableEntity, body)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, body api.Error) {
	writeJSON(w, r, status, body)
}
