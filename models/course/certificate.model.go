package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued course completion certificate. At most one exists
// per (user, course); the composite unique index backs the insert-if-absent
// issuance path.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificates_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificates_user_course;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"` // CERT-{yyyyMMdd}-{userId}-{courseId}
	VerificationCode  string    `json:"verification_code" gorm:"uniqueIndex"`
	DownloadToken     string    `json:"download_token" gorm:"size:36"` // uuid used in the public URL
	CertificateURL    string    `json:"certificate_url"`
	IssuedAt          time.Time `json:"issued_at"`
	CompletionDate    time.Time `json:"completion_date"`
	IsDeleted         bool      `gorm:"default:false"`
}
