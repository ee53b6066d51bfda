package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/certificate"
	courseModels "lms/models/course"
)

// CertificateRepository persists certificates keyed by (user, course). The
// composite unique index on the table makes InsertIfAbsent atomic; two
// concurrent issuers cannot both insert.
type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Find(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, certificate.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) InsertIfAbsent(ctx context.Context, cert *courseModels.Certificate) (*courseModels.Certificate, bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(cert)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race: another request inserted first. Read the winner's
		// row and hand it back unchanged.
		existing, err := r.Find(ctx, cert.UserID, cert.CourseID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return cert, true, nil
}

// FindByVerificationCode resolves a public verification code to its
// certificate. Not part of the issuer contract; serves the verify endpoint.
func (r *CertificateRepository) FindByVerificationCode(ctx context.Context, code string) (*courseModels.Certificate, error) {
	var cert courseModels.Certificate
	err := r.db.WithContext(ctx).
		Where("verification_code = ? AND is_deleted = ?", code, false).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, certificate.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
