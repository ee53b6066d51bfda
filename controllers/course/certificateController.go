package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lms/certificate"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/repository"
	"lms/utils"
)

func newCertificateIssuer() (*certificate.Issuer, *repository.CertificateRepository) {
	db := database.Database.Db
	certs := repository.NewCertificateRepository(db)
	issuer := certificate.NewIssuer(
		repository.NewProgressStore(db),
		repository.NewAssessmentStore(db),
		certs,
		config.AppConfig.CertificateBaseURL,
	)
	return issuer, certs
}

// GetCertificateEligibility previews whether the user currently qualifies
// for a certificate, with the blockers if not
func GetCertificateEligibility(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	issuer, _ := newCertificateIssuer()

	snapshot, err := issuer.Snapshot(c.UserContext(), user.ID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Failed to fetch progress, please retry!", nil)
	}

	result, err := certificate.Evaluate(snapshot)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to evaluate eligibility!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility evaluated successfully!", fiber.Map{
		"snapshot":    snapshot,
		"eligibility": result,
	})
}

// GenerateCertificate issues the course completion certificate. Safe to
// call repeatedly: the same certificate comes back every time.
func GenerateCertificate(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", user.ID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	issuer, _ := newCertificateIssuer()

	cert, inserted, err := issuer.Issue(c.UserContext(), user.ID, uint(courseID))
	if err != nil {
		var notEligible *certificate.NotEligibleError
		if errors.As(err, &notEligible) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Not eligible for certificate yet!", fiber.Map{
				"reasons": notEligible.Reasons,
			})
		}
		var storageErr *certificate.StorageError
		if errors.As(err, &storageErr) {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Certificate issuance failed, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}

	if inserted {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		go utils.SendCertificateEmail(user.Email, user.Name, course.Title, cert.CertificateNumber, cert.VerificationCode)

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate generated successfully!", cert)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued!", fiber.Map{
		"certificate":    cert,
		"already_issued": true,
	})
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// VerifyCertificate is the public endpoint resolving a verification code
// to the certificate it belongs to. No authentication: the code itself is
// the proof.
func VerifyCertificate(c *fiber.Ctx) error {
	code := c.Locals("verificationCode").(string)

	_, certs := newCertificateIssuer()

	cert, err := certs.FindByVerificationCode(c.UserContext(), code)
	if err != nil {
		if errors.Is(err, certificate.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", fiber.Map{
				"is_valid": false,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
	}

	var holder models.User
	var course courseModels.Course
	database.Database.Db.Select("name").Where("id = ?", cert.UserID).First(&holder)
	database.Database.Db.Select("title").Where("id = ?", cert.CourseID).First(&course)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", fiber.Map{
		"is_valid":           true,
		"certificate_number": cert.CertificateNumber,
		"holder_name":        holder.Name,
		"course_name":        course.Title,
		"issued_at":          cert.IssuedAt,
		"completion_date":    cert.CompletionDate,
	})
}
