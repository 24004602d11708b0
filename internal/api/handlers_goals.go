package api

import (
	"github.com/HarshitaThota/Flow-State/internal/cycle"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"github.com/gofiber/fiber/v2"
)

type completeTaskInput struct {
	Energy *int `json:"energy"`
}

// ListGoals orders goals by fit with today's phase when the cycle is set up.
func (handler *Handler) ListGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var phase *cycle.Phase
	if current, known := handler.cycleService.CurrentPhase(*user, handler.now()); known {
		phase = &current
	}
	goals, err := handler.goalService.ListGoals(user.ID, phase)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"goals": goals, "phase": phase})
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.GoalInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	goal, err := handler.goalService.CreateGoal(user.ID, input, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, valid := paramID(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	update := services.GoalUpdate{}
	if err := parseJSONBody(c, &update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	goal, err := handler.goalService.UpdateGoal(user.ID, goalID, update, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(goal)
}

func (handler *Handler) AddGoalTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, valid := paramID(c, "id")
	if !valid {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	input := services.TaskInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	task, err := handler.goalService.AddTask(user.ID, goalID, input, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (handler *Handler) CompleteGoalTask(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	goalID, validGoal := paramID(c, "id")
	taskID, validTask := paramID(c, "taskID")
	if !validGoal || !validTask {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}

	input := completeTaskInput{}
	if err := parseJSONBody(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	goal, err := handler.goalService.CompleteTask(user.ID, goalID, taskID, input.Energy, handler.now())
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(goal)
}
