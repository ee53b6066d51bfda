package courseRoutes

import (
	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (public published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("enroll-course"), validators.EnrollCourse(), controllers.EnrollInCourse)

	// Content viewing (for enrolled users)
	userGroup.Get("/:id/content", middleware.JWTMiddleware, validators.CourseContentList(), controllers.GetCourseContent)
	userGroup.Get("/:course_id/module/:module_id/day/:day", middleware.JWTMiddleware, validators.GetDayContent(), controllers.GetDayContent)

	// Content completion
	userGroup.Post("/:course_id/content/:content_id/complete", middleware.JWTMiddleware, validators.MarkContentComplete(), controllers.MarkContentComplete)

	// MCQ submission
	userGroup.Post("/:course_id/content/:content_id/mcq/submit", middleware.JWTMiddleware, validators.SubmitMCQ(), controllers.SubmitMCQAnswer)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Assignments
	userGroup.Get("/:course_id/assignments", middleware.JWTMiddleware, validators.AssignmentList(), controllers.GetCourseAssignments)
	userGroup.Post("/:course_id/assignment/:assignment_id/submit", middleware.JWTMiddleware, validators.SubmitAssignment(), controllers.SubmitAssignment)

	// Certificates
	userGroup.Get("/:course_id/certificate/eligibility", middleware.JWTMiddleware, validators.CertificateCourse(), controllers.GetCertificateEligibility)
	userGroup.Post("/:course_id/certificate/generate", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("generate-certificate"), validators.CertificateCourse(), controllers.GenerateCertificate)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)

	// Public certificate verification, no auth: the code is the proof
	app.Get("/certificate/verify/:code", validators.VerifyCertificate(), controllers.VerifyCertificate)
}
