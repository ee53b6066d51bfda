package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// MarkContentComplete records that the user finished a piece of content
func MarkContentComplete(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	var existing courseModels.ContentCompletion
	if err := database.Database.Db.Where("user_id = ? AND course_content_id = ? AND is_deleted = ?", user.ID, contentID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Content already marked complete!", existing)
	}

	completion := courseModels.ContentCompletion{
		UserID:          user.ID,
		CourseID:        uint(courseID),
		CourseContentID: uint(contentID),
		ModuleID:        content.ModuleID,
		Status:          "COMPLETED",
		CompletedAt:     time.Now(),
	}

	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content complete!", nil)
	}

	updateEnrollmentProgress(user.ID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked complete!", completion)
}

// GetCourseContent lists published content for an enrolled user
func GetCourseContent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	var contents []courseModels.CourseContent
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("module_id asc, day asc, order_index asc").Find(&contents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"contents": contents,
		"total":    len(contents),
	})
}

// updateEnrollmentProgress recomputes the enrollment progress after a
// content completion
func updateEnrollmentProgress(userID uint, courseID uint) {
	var totalContent int64
	var completedContent int64

	database.Database.Db.Model(&courseModels.CourseContent{}).Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).Count(&totalContent)
	database.Database.Db.Model(&courseModels.ContentCompletion{}).Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Count(&completedContent)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	enrollment.CompletedContents = int(completedContent)
	enrollment.TotalContents = int(totalContent)

	if totalContent > 0 {
		enrollment.Progress = float64(completedContent) / float64(totalContent) * 100
	}

	if enrollment.Progress >= 100 {
		enrollment.Status = "COMPLETED"
		now := time.Now()
		enrollment.CompletedAt = &now
	} else if enrollment.Progress > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	database.Database.Db.Save(&enrollment)
}
