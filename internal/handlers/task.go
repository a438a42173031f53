package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/progress-tracker-api/internal/repository"
	"github.com/yukikurage/progress-tracker-api/internal/services"
)

// TaskHandler serves /api/tasks
type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks supports ?milestone_id= and ?user_id=
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.List(c.Request.Context(), repository.TaskFilter{
		MilestoneID: c.Query("milestone_id"),
		UserID:      c.Query("user_id"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, "tasks", tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var input services.TaskInput
	if !bindInput(c, &input) {
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, "task", task.ID, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var input services.TaskInput
	if !bindInput(c, &input) {
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondUpdated(c, "task", task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondDeleted(c, "task")
}
