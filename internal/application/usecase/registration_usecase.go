package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/registro-empresas/internal/application/dto"
	"github.com/jhoicas/registro-empresas/internal/domain"
	"github.com/jhoicas/registro-empresas/internal/domain/entity"
	"github.com/jhoicas/registro-empresas/internal/domain/identification"
	"github.com/jhoicas/registro-empresas/internal/domain/repository"
	"github.com/jhoicas/registro-empresas/pkg/logger"
)

const minPhoneLength = 7

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IdentifierCheck resultado de la fase 1; el llamador lo entrega a la fase 2.
type IdentifierCheck struct {
	Type       entity.IdentificationType
	Raw        string
	Normalized string
	CheckDigit string
	Message    string
}

// RegistrationUseCase orquesta la verificación del identificador y el registro.
// La unicidad se garantiza únicamente con InsertIfAbsent; las consultas previas
// solo adelantan la respuesta al usuario.
type RegistrationUseCase struct {
	repo    repository.RegistrationRepository
	certs   CertificateGenerator
	metrics RegistrationMetrics
	log     *logger.Logger
	tracer  trace.Tracer

	now   func() time.Time
	newID func() string
}

// NewRegistrationUseCase construye el caso de uso. certs, metrics y log pueden ser nil.
func NewRegistrationUseCase(
	repo repository.RegistrationRepository,
	certs CertificateGenerator,
	metrics RegistrationMetrics,
	log *logger.Logger,
) *RegistrationUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RegistrationUseCase{
		repo:    repo,
		certs:   certs,
		metrics: metrics,
		log:     log.Component("registration"),
		tracer:  otel.Tracer("github.com/jhoicas/registro-empresas/internal/application/usecase"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// CheckIdentifier fase 1: identificador presente, no registrado y, si es NIT, con formato válido.
func (uc *RegistrationUseCase) CheckIdentifier(ctx context.Context, idType, raw string) (*IdentifierCheck, error) {
	ctx, span := uc.tracer.Start(ctx, "registration.check_identifier")
	defer span.End()

	check, err := uc.checkIdentifier(ctx, idType, raw)
	result := "valid"
	if err != nil {
		result = domain.Code(err)
	}
	label := "UNKNOWN"
	if t, perr := identification.ParseType(idType); perr == nil {
		label = string(t)
	}
	uc.metrics.ObserveValidation(label, result)
	span.SetAttributes(attribute.String("registration.result", result))
	return check, err
}

func (uc *RegistrationUseCase) checkIdentifier(ctx context.Context, idType, raw string) (*IdentifierCheck, error) {
	t, err := identification.ParseType(idType)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, domain.ErrMissingIdentifier
	}
	key := identification.Normalize(trimmed)

	existing, err := uc.find(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.AlreadyRegisteredError{Existing: existing}
	}

	res := identification.Validate(trimmed, t)
	if !res.Valid {
		return nil, &domain.FieldError{Kind: res.Reason, Fields: map[string]string{"identification": res.Message}}
	}
	return &IdentifierCheck{
		Type:       t,
		Raw:        trimmed,
		Normalized: key,
		CheckDigit: res.CheckDigit,
		Message:    res.Message,
	}, nil
}

// Register fase 2: valida los datos y crea el registro con una única inserción atómica.
// Un conflicto de unicidad tiene prioridad sobre los errores de formato de email y teléfono.
func (uc *RegistrationUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*entity.RegisteredEntity, error) {
	start := time.Now()
	ctx, span := uc.tracer.Start(ctx, "registration.register")
	defer span.End()

	e, err := uc.register(ctx, in)
	result := "created"
	switch {
	case err == nil:
		span.SetAttributes(attribute.String("registration.id", e.ID))
	case errors.Is(err, domain.ErrAlreadyRegistered):
		result = "conflict"
	case domain.IsValidationError(err):
		result = "invalid"
	default:
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.String("registration.result", result))
	uc.metrics.ObserveRegistration(result, start)
	return e, err
}

func (uc *RegistrationUseCase) register(ctx context.Context, in dto.RegisterRequest) (*entity.RegisteredEntity, error) {
	t := entity.IdentificationNIT
	if strings.TrimSpace(in.IdentificationType) != "" {
		parsed, err := identification.ParseType(in.IdentificationType)
		if err != nil {
			return nil, domain.NewFieldError(domain.ErrInvalidType, "identificationType")
		}
		t = parsed
	}

	raw := strings.TrimSpace(in.RawIdentifier())
	details := in.Details(t)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)

	var missing []string
	if raw == "" {
		missing = append(missing, "identification")
	}
	missing = append(missing, details.MissingFields()...)
	if email == "" {
		missing = append(missing, "email")
	}
	if phone == "" {
		missing = append(missing, "phone")
	}
	if address == "" {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return nil, domain.NewMissingFieldsError(missing...)
	}

	key := identification.Normalize(raw)
	existing, err := uc.find(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.log.Info().Str("key", key).Str("existing_id", existing.ID).Msg("registro rechazado: identificación ya registrada")
		return nil, &domain.AlreadyRegisteredError{Existing: existing}
	}

	// La fase 1 no se da por cumplida: el NIT se valida de nuevo.
	if res := identification.Validate(raw, t); !res.Valid {
		return nil, &domain.FieldError{Kind: res.Reason, Fields: map[string]string{"identification": res.Message}}
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.NewFieldError(domain.ErrInvalidEmail, "email")
	}
	if len(stripPhone(phone)) < minPhoneLength {
		return nil, domain.NewFieldError(domain.ErrInvalidPhone, "phone")
	}

	e := &entity.RegisteredEntity{
		ID:                   uc.newID(),
		RawIdentifier:        raw,
		NormalizedIdentifier: key,
		IdentificationType:   t,
		Name:                 details.DisplayName(),
		Email:                email,
		Phone:                phone,
		Address:              address,
		RegisteredAt:         uc.now().UTC().Truncate(time.Microsecond),
		Status:               entity.StatusActive,
	}

	stored, err := uc.repo.InsertIfAbsent(ctx, e)
	if err != nil {
		var conflict *domain.AlreadyRegisteredError
		if errors.As(err, &conflict) {
			if conflict.Existing == nil {
				conflict.Existing = stored
			}
			uc.log.Warn().Str("key", key).Msg("registro concurrente: otra solicitud ganó la inserción")
			return nil, conflict
		}
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, &domain.AlreadyRegisteredError{Existing: stored}
		}
		return nil, uc.storageFailure(ctx, "insert", err)
	}

	uc.log.Info().Str("id", stored.ID).Str("key", key).Str("type", string(t)).Msg("registro creado")
	return stored, nil
}

// GetByIdentifier busca por identificador crudo usando la misma normalización que la escritura.
func (uc *RegistrationUseCase) GetByIdentifier(ctx context.Context, raw string) (*entity.RegisteredEntity, error) {
	ctx, span := uc.tracer.Start(ctx, "registration.get")
	defer span.End()

	key := identification.Normalize(raw)
	if key == "" {
		return nil, domain.ErrNotFound
	}
	e, err := uc.find(ctx, key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// List lista registros en orden de registro.
func (uc *RegistrationUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.RegistrationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, uc.storageFailure(ctx, "list", err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, uc.storageFailure(ctx, "count", err)
	}
	items := make([]dto.RegistrationResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.NewRegistrationResponse(e))
	}
	return &dto.RegistrationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Certificate genera la constancia PDF de un registro existente.
func (uc *RegistrationUseCase) Certificate(ctx context.Context, raw string) ([]byte, *entity.RegisteredEntity, error) {
	if uc.certs == nil {
		return nil, nil, fmt.Errorf("constancia: generador no configurado")
	}
	e, err := uc.GetByIdentifier(ctx, raw)
	if err != nil {
		return nil, nil, err
	}
	data := CertificateData{
		Entity:     e,
		VerifyData: fmt.Sprintf("registro:%s|%s|%s", e.ID, e.NormalizedIdentifier, e.RegisteredAt.Format(time.RFC3339)),
	}
	if e.IdentificationType == entity.IdentificationNIT {
		data.CheckDigit = identification.Validate(e.RawIdentifier, e.IdentificationType).CheckDigit
	}
	pdf, err := uc.certs.GenerateCertificate(ctx, data)
	if err != nil {
		return nil, nil, fmt.Errorf("constancia: %w", err)
	}
	return pdf, e, nil
}

func (uc *RegistrationUseCase) find(ctx context.Context, key string) (*entity.RegisteredEntity, error) {
	e, err := uc.repo.FindByNormalizedIdentifier(ctx, key)
	if err != nil {
		return nil, uc.storageFailure(ctx, "find", err)
	}
	return e, nil
}

// storageFailure registra el fallo y garantiza que el error envuelva ErrStorageUnavailable
// (salvo cancelación del contexto).
func (uc *RegistrationUseCase) storageFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	uc.metrics.IncrementStorageError(op)
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	uc.log.Error().Err(err).Str("op", op).Msg("fallo de almacenamiento")
	if !errors.Is(err, domain.ErrStorageUnavailable) {
		err = fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStorageUnavailable, err))
	}
	return err
}

// stripPhone quita espacios y los símbolos habituales de un teléfono.
func stripPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')', '+', '.':
			return -1
		}
		return r
	}, phone)
}
