// Package service contains the task tracker business logic.
package service

import (
	"github.com/taskdesk/taskdesk/data"
	"github.com/taskdesk/taskdesk/logger"
)

// Service aggregates all business logic services.
type Service struct {
	Task *TaskService
}

// NewService creates a new service instance with all sub-services initialized.
func NewService(d *data.Data, logger *logger.Logger) *Service {
	return &Service{
		Task: NewTaskService(d, logger),
	}
}
