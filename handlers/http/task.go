package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TaskHandler holds the task routes. The endpoints are declared but the task
// service has no behavior yet; see repositories.TaskRepository for the
// contract a future implementation fills in.
type TaskHandler struct{}

func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// CreateTask POST /task/create-task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}

// UpdateTask PUT /task/update-task/:taskId
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}

// DeleteTask DELETE /task/delete-task/:taskId
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}
