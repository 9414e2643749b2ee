package http

import (
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
)

// TaskHandler serves the task list of the session user. Routes are wrapped in
// requireSession, so a user is always present in the context.
type TaskHandler struct {
	TaskService *service.TaskService
}

func (h *TaskHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	tasks, err := h.TaskService.ListTasks(r.Context(), user.ID)
	if err != nil {
		render(w, r, http.StatusInternalServerError, "home.html",
			homeView{Username: user.Username, Error: msgGeneric})
		return
	}

	render(w, r, http.StatusOK, "home.html", homeView{Username: user.Username, Tasks: tasks})
}

// The form handlers below always land back on the list. Service failures are
// logged by the service and otherwise swallowed.

func (h *TaskHandler) HandleAddTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	_, _ = h.TaskService.CreateTask(r.Context(), user.ID, r.PostFormValue("tasks"))
	httpx.SeeOther(w, r, "/")
}

func (h *TaskHandler) HandleCompleteTask(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if taskID := r.PostFormValue("task_id"); taskID != "" {
		_ = h.TaskService.CompleteTask(r.Context(), user.ID, taskID)
	}
	httpx.SeeOther(w, r, "/")
}

func (h *TaskHandler) HandleRemoveCompleted(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	_ = h.TaskService.PurgeCompleted(r.Context(), user.ID)
	httpx.SeeOther(w, r, "/")
}
