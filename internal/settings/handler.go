// AngelaMos | 2026
// handler.go

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/angelamos/artisan-market/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// PublicSettings returns the whitelisted public keys as a flat map,
// which is what the storefront consumes.
func (s *Service) PublicSettings(
	ctx context.Context,
) (map[string]string, error) {
	settings, err := s.repo.GetPublic(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(settings))
	for _, setting := range settings {
		out[setting.Key] = setting.Value
	}

	return out, nil
}

func (s *Service) AllSettings(ctx context.Context) ([]Setting, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) UpdateSetting(
	ctx context.Context,
	key, value string,
	public bool,
) (*Setting, error) {
	setting := &Setting{Key: key, Value: value, Public: public}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, err
	}

	return setting, nil
}

type UpdateSettingRequest struct {
	Value  string `json:"value"  validate:"required,max=1000"`
	Public bool   `json:"public"`
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.GetPublicSettings)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/settings", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetAllSettings)
		r.Put("/{key}", h.UpdateSetting)
	})
}

func (h *Handler) GetPublicSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.PublicSettings(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, settings)
}

func (h *Handler) GetAllSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.AllSettings(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, settings)
}

func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		core.BadRequest(w, "setting key required")
		return
	}

	var req UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	setting, err := h.service.UpdateSetting(
		r.Context(),
		key,
		req.Value,
		req.Public,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "setting")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, setting)
}
