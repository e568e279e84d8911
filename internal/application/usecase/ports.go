package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/registro-empresas/internal/domain/entity"
)

// CertificateData datos para la constancia de registro en PDF.
type CertificateData struct {
	Entity     *entity.RegisteredEntity
	CheckDigit string // dígito de verificación DIAN (solo NIT)
	VerifyData string // contenido del código QR
}

// CertificateGenerator genera la constancia de registro. Implementado en infrastructure/pdf.
type CertificateGenerator interface {
	GenerateCertificate(ctx context.Context, data CertificateData) ([]byte, error)
}

// RegistrationMetrics métricas del flujo de registro. Implementado en infrastructure/metrics.
type RegistrationMetrics interface {
	ObserveValidation(idType, result string)
	ObserveRegistration(result string, start time.Time)
	IncrementStorageError(op string)
}

type nopMetrics struct{}

func (nopMetrics) ObserveValidation(string, string)      {}
func (nopMetrics) ObserveRegistration(string, time.Time) {}
func (nopMetrics) IncrementStorageError(string)          {}
