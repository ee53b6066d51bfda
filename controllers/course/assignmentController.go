package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
)

// GetCourseAssignments lists published assignments for an enrolled user,
// with the user's submission state
func GetCourseAssignments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var assignments []courseModels.Assignment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("created_at asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type AssignmentWithSubmission struct {
		courseModels.Assignment
		Submitted bool     `json:"submitted"`
		IsGraded  bool     `json:"is_graded"`
		Grade     *float64 `json:"grade,omitempty"`
	}

	result := make([]AssignmentWithSubmission, len(assignments))
	for i, a := range assignments {
		result[i] = AssignmentWithSubmission{Assignment: a}

		var submission courseModels.AssignmentSubmission
		if err := database.Database.Db.Where("user_id = ? AND assignment_id = ? AND is_deleted = ?", user.ID, a.ID, false).First(&submission).Error; err == nil {
			result[i].Submitted = true
			result[i].IsGraded = submission.IsGraded
			if submission.IsGraded {
				grade := submission.Grade
				result[i].Grade = &grade
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
		"total":       len(result),
	})
}

// SubmitAssignment stores a student's assignment submission
func SubmitAssignment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	assignmentID := c.Locals("assignmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", assignmentID, courseID, false, true).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var existing courseModels.AssignmentSubmission
	if err := database.Database.Db.Where("user_id = ? AND assignment_id = ? AND is_deleted = ?", user.ID, assignmentID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Assignment already submitted!", existing)
	}

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Content string `json:"content"`
		FileURL string `json:"file_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission := courseModels.AssignmentSubmission{
		UserID:       user.ID,
		CourseID:     uint(courseID),
		AssignmentID: uint(assignmentID),
		Content:      reqData.Content,
		FileURL:      reqData.FileURL,
		SubmittedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// AdminGradeSubmission records a grade for a student's submission
func AdminGradeSubmission(c *fiber.Ctx) error {
	admin, err := requireAdmin(c)
	if err != nil {
		return err
	}

	submissionID := c.Locals("submissionID").(int)

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Grade    float64 `json:"grade"`
		Feedback string  `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var submission courseModels.AssignmentSubmission
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", submissionID, false).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	now := time.Now()
	submission.Grade = reqData.Grade
	submission.Feedback = reqData.Feedback
	submission.IsGraded = true
	submission.GradedAt = &now
	submission.GradedBy = &admin.ID

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}

// AdminGetSubmissions lists ungraded submissions for an assignment
func AdminGetSubmissions(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	assignmentID := c.Locals("assignmentID").(int)

	var submissions []courseModels.AssignmentSubmission
	if err := database.Database.Db.Where("assignment_id = ? AND is_deleted = ?", assignmentID, false).
		Order("submitted_at asc").Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"submissions": submissions,
		"total":       len(submissions),
	})
}
