package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/certificate"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
)

// AdminDashboardStats serves the cached platform-wide counters
func AdminDashboardStats(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	stats := utils.GetDashboardStats()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", stats)
}

// AdminGetCourseEnrollments lists all enrollments for a course
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithUser{Enrollment: e}

		var user models.User
		if err := database.Database.Db.Select("name", "email").Where("id = ?", e.UserID).First(&user).Error; err == nil {
			result[i].UserName = user.Name
			result[i].UserEmail = user.Email
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"course":      course.Title,
		"enrollments": result,
		"total":       len(result),
	})
}

// AdminGetCompletedStudents lists students who finished a course
func AdminGetCompletedStudents(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("course_id = ? AND status = ? AND is_deleted = ?", courseID, "COMPLETED", false).
		Order("completed_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed students!", nil)
	}

	type CompletedStudent struct {
		UserID         uint       `json:"user_id"`
		UserName       string     `json:"user_name"`
		UserEmail      string     `json:"user_email"`
		Progress       float64    `json:"progress"`
		CompletedAt    *time.Time `json:"completed_at"`
		HasCertificate bool       `json:"has_certificate"`
	}

	result := make([]CompletedStudent, len(enrollments))
	for i, e := range enrollments {
		result[i] = CompletedStudent{
			UserID:      e.UserID,
			Progress:    e.Progress,
			CompletedAt: e.CompletedAt,
		}

		var user models.User
		if err := database.Database.Db.Select("name", "email").Where("id = ?", e.UserID).First(&user).Error; err == nil {
			result[i].UserName = user.Name
			result[i].UserEmail = user.Email
		}

		var cert courseModels.Certificate
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", e.UserID, courseID, false).First(&cert).Error; err == nil {
			result[i].HasCertificate = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed students fetched successfully!", fiber.Map{
		"students": result,
		"total":    len(result),
	})
}

// AdminGetStudentProgress shows one student's standing in a course,
// including their current certificate eligibility
func AdminGetStudentProgress(c *fiber.Ctx) error {
	if _, err := requireAdmin(c); err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)
	studentID := c.Locals("studentID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", studentID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", studentID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not enrolled in this course!", nil)
	}

	issuer, _ := newCertificateIssuer()

	data := fiber.Map{
		"student": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"enrollment": enrollment,
	}

	if snapshot, err := issuer.Snapshot(c.UserContext(), uint(studentID), uint(courseID)); err == nil {
		data["snapshot"] = snapshot
		if result, err := certificate.Evaluate(snapshot); err == nil {
			data["eligibility"] = result
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", data)
}
