package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/jhoicas/registro-empresas/internal/application/usecase"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/filestore"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/metrics"
	"github.com/jhoicas/registro-empresas/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/registro-empresas/internal/interfaces/http"
	"github.com/jhoicas/registro-empresas/mocks"
	pkgjwt "github.com/jhoicas/registro-empresas/pkg/jwt"
)

type HandlerSuite struct {
	suite.Suite
	app       *fiber.App
	storePath string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.storePath = filepath.Join(s.T().TempDir(), "companies.json")
	store, err := filestore.Open(s.storePath)
	s.Require().NoError(err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	uc := usecase.NewRegistrationUseCase(store, pdf.NewMarotoCertificateGenerator("test"), m, nil)
	s.app = apphttp.NewServer(apphttp.RouterDeps{
		RegistrationUC: uc,
		Metrics:        m,
		Gatherer:       reg,
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
		ServiceName:    "registro-empresas",
		Version:        "1.0.0",
	})
}

// do ejecuta una petición; body puede ser string (texto plano) o cualquier valor JSON.
func (s *HandlerSuite) do(method, path string, body any, header ...string) (*http.Response, map[string]any) {
	var reader io.Reader
	contentType := fiber.MIMEApplicationJSON
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
		contentType = fiber.MIMETextPlain
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })

	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func acmeBody() map[string]any {
	return map[string]any{
		"identificationType": "NIT",
		"identification":     "900674335",
		"name":               "Acme",
		"email":              "a@acme.com",
		"phone":              "3000000001",
		"address":            "Cra 1 # 1-1",
	}
}

func (s *HandlerSuite) TestHealth() {
	for _, path := range []string{"/health", "/api/health", "/api/validation/health"} {
		resp, body := s.do(http.MethodGet, path, nil)
		s.Equal(http.StatusOK, resp.StatusCode, path)
		s.Equal("ok", body["status"])
		s.Equal("registro-empresas", body["service"])
		s.Equal("1.0.0", body["version"])
		s.NotEmpty(body["timestamp"])
	}
}

func (s *HandlerSuite) TestValidation() {
	s.Run("NIT válido", func() {
		resp, body := s.do(http.MethodPost, "/api/validation/nit", map[string]any{"nit": "900674335"})
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(true, body["valid"])
		s.Equal("900674335", body["normalized"])
		s.Equal("9", body["checkDigit"])
	})
	s.Run("texto plano corto", func() {
		resp, body := s.do(http.MethodPost, "/validation/nit", "9006743")
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal(false, body["valid"])
		s.Equal("TOO_SHORT", body["reason"])
	})
	s.Run("formato inválido", func() {
		resp, body := s.do(http.MethodPost, "/validation/nit", map[string]any{"identification": "90A674335"})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("INVALID_FORMAT", body["reason"])
		s.Contains(body["message"], "formato de NIT inválido")
	})
	s.Run("sin identificación", func() {
		resp, body := s.do(http.MethodPost, "/validation/nit", map[string]any{})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("MISSING_IDENTIFIER", body["reason"])
	})
	s.Run("tipo desconocido", func() {
		resp, body := s.do(http.MethodPost, "/validation/pasaporte", map[string]any{"identification": "900674335"})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("INVALID_TYPE", body["reason"])
	})
	s.Run("ya registrado", func() {
		resp, created := s.do(http.MethodPost, "/registrations", acmeBody())
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		resp, body := s.do(http.MethodPost, "/validation/nit", map[string]any{"identification": "900-674-335"})
		s.Equal(http.StatusConflict, resp.StatusCode)
		s.Equal("ALREADY_REGISTERED", body["reason"])
		data, ok := body["data"].(map[string]any)
		s.Require().True(ok)
		s.Equal(created["id"], data["id"])
	})
}

func (s *HandlerSuite) TestRegisterAndLookup() {
	resp, created := s.do(http.MethodPost, "/api/registrations", acmeBody())
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.NotEmpty(created["id"])
	s.Equal("active", created["status"])
	s.Equal("900674335", created["normalizedNIT"])

	s.Run("duplicado devuelve 409 con el registro original", func() {
		dup := acmeBody()
		dup["identification"] = "900-674-335"
		resp, body := s.do(http.MethodPost, "/registrations", dup)
		s.Equal(http.StatusConflict, resp.StatusCode)
		s.Equal("ALREADY_REGISTERED", body["code"])
		data, ok := body["data"].(map[string]any)
		s.Require().True(ok)
		s.Equal(created["id"], data["id"])
	})

	s.Run("consulta con identificador sin normalizar", func() {
		resp, body := s.do(http.MethodGet, "/registrations/900%20674-335", nil)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(created, body)
	})

	s.Run("alias /companies", func() {
		resp, body := s.do(http.MethodGet, "/api/companies/900674335", nil)
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal(created["id"], body["id"])
	})

	s.Run("no encontrado", func() {
		resp, body := s.do(http.MethodGet, "/api/registrations/811033098", nil)
		s.Equal(http.StatusNotFound, resp.StatusCode)
		s.Equal("not found", body["message"])
	})

	s.Run("constancia PDF", func() {
		req := httptest.NewRequest(http.MethodGet, "/registrations/900674335/certificate", nil)
		resp, err := s.app.Test(req, -1)
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal("application/pdf", resp.Header.Get(fiber.HeaderContentType))
		raw, err := io.ReadAll(resp.Body)
		s.Require().NoError(err)
		s.True(bytes.HasPrefix(raw, []byte("%PDF")))
	})
}

func (s *HandlerSuite) postForm(form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	s.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

// TestRegisterForm_StoredRecordSurvivesLaterRequests verifica que un registro enviado como
// formulario no cambia cuando llegan peticiones posteriores, ni en memoria ni en disco.
func (s *HandlerSuite) TestRegisterForm_StoredRecordSurvivesLaterRequests() {
	resp := s.postForm(url.Values{
		"identification": {"900674335"},
		"name":           {"Acme"},
		"email":          {"a@acme.com"},
		"phone":          {"3000000001"},
		"address":        {"Cra 1 # 1-1"},
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	for i := 0; i < 50; i++ {
		s.postForm(url.Values{
			"identification": {fmt.Sprintf("8111%05d", i)},
			"name":           {"XXXXXXXXXXXXXXXX"},
			"email":          {"x@xxxxxxxx.co"},
			"phone":          {"3111111111"},
			"address":        {"XXXXXXXXXXXXXXXX"},
		})
	}

	check := func(nit, name, address string) {
		s.Equal("900674335", nit)
		s.Equal("Acme", name)
		s.Equal("Cra 1 # 1-1", address)
	}

	resp, body := s.do(http.MethodGet, "/registrations/900674335", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	check(body["nit"].(string), body["name"].(string), body["address"].(string))

	reopened, err := filestore.Open(s.storePath)
	s.Require().NoError(err)
	found, err := reopened.FindByNormalizedIdentifier(context.Background(), "900674335")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	check(found.RawIdentifier, found.Name, found.Address)
	s.Equal("900674335", found.NormalizedIdentifier)
}

func (s *HandlerSuite) TestRegisterValidationErrors() {
	s.Run("persona sin primer apellido", func() {
		resp, body := s.do(http.MethodPost, "/registrations", map[string]any{
			"identificationType": "OTHER",
			"identification":     "1020304050",
			"firstName":          "Ana",
			"secondLastName":     "Gomez",
			"email":              "ana@correo.co",
			"phone":              "3001234567",
			"address":            "Calle 10",
		})
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("MISSING_FIELDS", body["code"])
		fields, ok := body["fields"].(map[string]any)
		s.Require().True(ok)
		s.Contains(fields, "firstLastName")
	})
	s.Run("email inválido", func() {
		in := acmeBody()
		in["email"] = "a@acme"
		resp, body := s.do(http.MethodPost, "/registrations", in)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("INVALID_EMAIL", body["code"])
		s.Contains(body["fields"], "email")
	})
	s.Run("teléfono inválido", func() {
		in := acmeBody()
		in["phone"] = "123-45"
		resp, body := s.do(http.MethodPost, "/registrations", in)
		s.Equal(http.StatusBadRequest, resp.StatusCode)
		s.Equal("INVALID_PHONE", body["code"])
	})
	s.Run("cuerpo inválido", func() {
		req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader("{no-json"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := s.app.Test(req, -1)
		s.Require().NoError(err)
		defer resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *HandlerSuite) TestAdminList() {
	for _, id := range []string{"900674335", "811033098"} {
		in := acmeBody()
		in["identification"] = id
		resp, _ := s.do(http.MethodPost, "/registrations", in)
		s.Require().Equal(http.StatusCreated, resp.StatusCode)
	}

	resp, _ := s.do(http.MethodGet, "/admin/registrations", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	tok, err := pkgjwt.Generate(testJWTSecret, testSubject, "viewer", testIssuer, testExpMin)
	s.Require().NoError(err)
	resp, _ = s.do(http.MethodGet, "/admin/registrations", nil, "Authorization", "Bearer "+tok)
	s.Equal(http.StatusForbidden, resp.StatusCode)

	tok, err = pkgjwt.Generate(testJWTSecret, testSubject, pkgjwt.RoleOperator, testIssuer, testExpMin)
	s.Require().NoError(err)
	resp, body := s.do(http.MethodGet, "/api/admin/registrations?limit=1&offset=1", nil, "Authorization", "Bearer "+tok)
	s.Equal(http.StatusOK, resp.StatusCode)
	page := body["page"].(map[string]any)
	s.Equal(float64(2), page["total"])
	items := body["items"].([]any)
	s.Require().Len(items, 1)
	s.Equal("811033098", items[0].(map[string]any)["normalizedNIT"])
}

func (s *HandlerSuite) TestMetricsAndNotFound() {
	resp, _ := s.do(http.MethodPost, "/registrations", acmeBody())
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mresp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer mresp.Body.Close()
	raw, _ := io.ReadAll(mresp.Body)
	s.Equal(http.StatusOK, mresp.StatusCode)
	s.Contains(string(raw), `registro_registrations_total{result="created"} 1`)

	resp, body := s.do(http.MethodGet, "/no-existe", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Equal("NOT_FOUND", body["code"])
}

func TestRegister_StorageUnavailable_Returns500(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRegistrationRepository(ctrl)
	repo.EXPECT().FindByNormalizedIdentifier(gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().InsertIfAbsent(gomock.Any(), gomock.Any()).Return(nil, errors.New("permiso denegado"))

	app := apphttp.NewServer(apphttp.RouterDeps{
		RegistrationUC: usecase.NewRegistrationUseCase(repo, nil, nil, nil),
		ServiceName:    "registro-empresas",
	})
	raw, err := json.Marshal(acmeBody())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/registrations", bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "STORAGE_UNAVAILABLE", body["code"])
}
