package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	// Course CRUD
	adminGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Get("/list", middleware.JWTMiddleware, validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, validators.PublishCourse(), controllers.AdminPublishCourse)

	// Module Management
	adminGroup.Post("/:id/module", middleware.JWTMiddleware, validators.CreateModule(), controllers.AdminCreateModule)

	// Content Management
	adminGroup.Post("/:course_id/module/:module_id/content", middleware.JWTMiddleware, validators.CreateContentAdmin(), controllers.AdminCreateContent)

	// MCQ Management
	contentGroup := app.Group("/admin/content")
	contentGroup.Post("/:content_id/mcq", middleware.JWTMiddleware, validators.AddMCQOption(), controllers.AdminAddMCQOption)

	// Assignment Management
	adminGroup.Post("/:id/assignment", middleware.JWTMiddleware, validators.CreateAssignmentAdmin(), controllers.AdminCreateAssignment)

	assignmentGroup := app.Group("/admin/assignment")
	assignmentGroup.Get("/:assignment_id/submissions", middleware.JWTMiddleware, validators.GetSubmissionsAdmin(), controllers.AdminGetSubmissions)

	submissionGroup := app.Group("/admin/submission")
	submissionGroup.Post("/:submission_id/grade", middleware.JWTMiddleware, validators.GradeSubmissionAdmin(), controllers.AdminGradeSubmission)

	// Enrollment & Progress Tracking
	adminGroup.Get("/:id/enrollments", middleware.JWTMiddleware, validators.GetCourseEnrollments(), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/:id/completed", middleware.JWTMiddleware, validators.GetCourseEnrollments(), controllers.AdminGetCompletedStudents)
	adminGroup.Get("/:course_id/student/:user_id/progress", middleware.JWTMiddleware, validators.GetStudentProgress(), controllers.AdminGetStudentProgress)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, controllers.AdminDashboardStats)
}
