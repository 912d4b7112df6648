package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload profilePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.accountService.UpdateProfile(user.ID, payload.Name)
	if err != nil {
		return serviceError(c, err, "failed to update profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    userView(&updated),
	})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload passwordChangePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.accountService.ChangePassword(user.ID, payload.CurrentPassword, payload.NewPassword, payload.ConfirmPassword); err != nil {
		return serviceError(c, err, "failed to change password")
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

func (handler *Handler) AccountStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	stats, err := handler.accountService.Stats(user.ID)
	if err != nil {
		return serviceError(c, err, "failed to load stats")
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var payload accountDeletePayload
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.accountService.DeleteAccount(user.ID, payload.Password); err != nil {
		return serviceError(c, err, "failed to delete account")
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

// Logout only acknowledges; bearer tokens are stateless and expire on their own.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
