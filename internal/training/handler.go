package training

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/onboarding-management/internal"
	"github.com/frahmantamala/onboarding-management/internal/transport"
)

type ServiceAPI interface {
	ListForUser(userID int64) ([]CourseWithState, error)
	ListAll() ([]Course, error)
	GetCourse(id int64) (*Course, error)
	CreateCourse(dto CreateCourseDTO) (*Course, error)
	UpdateCourse(id int64, dto UpdateCourseDTO) (*Course, error)
	DeleteCourse(id int64) error

	ListModules(courseID int64) ([]Module, error)
	CreateModule(courseID int64, dto CreateModuleDTO) (*Module, error)
	UpdateModule(id int64, dto UpdateModuleDTO) (*Module, error)
	DeleteModule(id int64) error

	GetQuiz(moduleID int64) (*QuizView, error)
	SetQuiz(moduleID int64, dto SetQuizDTO) (*QuizView, error)
	DeleteQuiz(moduleID int64) error

	Enroll(userID, courseID int64) (*Enrollment, error)
	Complete(userID, courseID int64) (*Enrollment, error)
}

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(logger *slog.Logger, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		service:     service,
	}
}

func param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, internal.NewValidationError("invalid "+name, internal.ErrCodeValidationFailed)
	}
	return id, nil
}

func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	courses, err := h.service.ListForUser(u.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) ListAllCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListAll()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	c, err := h.service.GetCourse(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var dto CreateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.service.CreateCourse(dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateCourseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.service.UpdateCourse(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.DeleteCourse(id); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	modules, err := h.service.ListModules(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, modules)
}

func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto CreateModuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.service.CreateModule(id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := param(r, "moduleId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto UpdateModuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	m, err := h.service.UpdateModule(moduleID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := param(r, "moduleId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.DeleteModule(moduleID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := param(r, "moduleId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	quiz, err := h.service.GetQuiz(moduleID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, quiz)
}

func (h *Handler) SetQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := param(r, "moduleId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	var dto SetQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quiz, err := h.service.SetQuiz(moduleID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, quiz)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := param(r, "moduleId")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	if err := h.service.DeleteQuiz(moduleID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	e, err := h.service.Enroll(u.ID, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, e)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id, err := param(r, "id")
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	e, err := h.service.Complete(u.ID, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}
