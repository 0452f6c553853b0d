// Package httpapi — JSON API меню поверх gorilla/mux.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/menuboard/internal/domain"
	"github.com/vladislavdragonenkov/menuboard/internal/menu"
	"github.com/vladislavdragonenkov/menuboard/internal/screen"
	"github.com/vladislavdragonenkov/menuboard/internal/service/catalog"
	"github.com/vladislavdragonenkov/menuboard/internal/tracing"
)

// PathPrefix — префикс всех маршрутов API.
const PathPrefix = "/api/v1"

const maxBodyBytes = 1 << 20

// Handler обслуживает HTTP API меню.
type Handler struct {
	catalog *catalog.Catalog
	logger  *log.Entry
}

// NewHandler создаёт обработчик API.
func NewHandler(c *catalog.Catalog, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-api")
	}
	return &Handler{catalog: c, logger: logger}
}

// NewRouter собирает маршрутизатор с трассировкой. tracer может быть nil.
func NewRouter(h *Handler, tracer trace.Tracer) *mux.Router {
	router := mux.NewRouter()
	if tracer != nil {
		router.Use(tracing.Middleware(tracer))
	}
	h.Register(router)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return router
}

// Register добавляет маршруты API на router.
func (h *Handler) Register(router *mux.Router) {
	api := router.PathPrefix(PathPrefix).Subrouter()

	api.HandleFunc("/items", h.listItems).Methods(http.MethodGet)
	api.HandleFunc("/items", h.addItem).Methods(http.MethodPost)
	api.HandleFunc("/items/{id}", h.getItem).Methods(http.MethodGet)
	api.HandleFunc("/items/{id}", h.removeItem).Methods(http.MethodDelete)

	api.HandleFunc("/screens/home", h.screen(func(*http.Request) (screen.Destination, error) {
		return screen.Home{}, nil
	})).Methods(http.MethodGet)
	api.HandleFunc("/screens/category/{course}", h.screen(func(r *http.Request) (screen.Destination, error) {
		return screen.ParseDestination(screen.NameCategory, map[string]string{
			screen.ParamCourse: mux.Vars(r)["course"],
		})
	})).Methods(http.MethodGet)
	api.HandleFunc("/screens/filter", h.screen(func(r *http.Request) (screen.Destination, error) {
		return screen.ParseDestination(screen.NameFilter, map[string]string{
			screen.ParamCourse: r.URL.Query().Get("course"),
		})
	})).Methods(http.MethodGet)
	api.HandleFunc("/screens/add-item", h.screen(func(*http.Request) (screen.Destination, error) {
		return screen.AddMenuItem{}, nil
	})).Methods(http.MethodGet)

	api.HandleFunc("/courses", h.listCourses).Methods(http.MethodGet)
}

type addItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Course      string   `json:"course"`
}

type itemResponse struct {
	screen.ItemView
	CreatedAt time.Time `json:"created_at"`
}

type itemsResponse struct {
	Course string         `json:"course"`
	Items  []itemResponse `json:"items"`
}

type courseResponse struct {
	Value domain.Course `json:"value"`
	Label string        `json:"label"`
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	selector, err := menu.ParseSelector(r.URL.Query().Get("course"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	items, err := h.catalog.Snapshot(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filtered := menu.Filter(items, selector)
	resp := itemsResponse{
		Course: selector.String(),
		Items:  make([]itemResponse, 0, len(filtered)),
	}
	for _, item := range filtered {
		resp.Items = append(resp.Items, toItemResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Price == nil {
		writeError(w, http.StatusBadRequest, "price is required")
		return
	}

	item, err := h.catalog.AddItem(r.Context(), catalog.NewMenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Course:      req.Course,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", PathPrefix+"/items/"+item.ID)
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.catalog.Item(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.RemoveItem(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCourses(w http.ResponseWriter, _ *http.Request) {
	courses := domain.Courses()
	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, courseResponse{Value: course, Label: course.Label()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) screen(resolve func(*http.Request) (screen.Destination, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dest, err := resolve(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		view, err := h.catalog.Screen(r.Context(), dest)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, domain.ErrMenuItemNotFound.Error())
	case errors.Is(err, domain.ErrMenuItemExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled):
		// клиент ушёл, отвечать некому
	default:
		span := trace.SpanFromContext(r.Context())
		span.RecordError(err)
		h.logger.WithError(err).WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"trace_id": tracing.TraceID(r.Context()),
		}).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toItemResponse(item domain.MenuItem) itemResponse {
	return itemResponse{ItemView: screen.NewItemView(item), CreatedAt: item.CreatedAt}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
