package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httpdelivery "github.com/Xausdorf/qr-bill-hub/internal/delivery/http"
	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
	"github.com/Xausdorf/qr-bill-hub/internal/infrastructure/qrbill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill/mocks"
)

const validBody = `{
  "Account": "CH9300762011623852957",
  "Creditor": {"Name": "Eagles Jungschar", "AddressLine1": "Bahnhofstrasse 1", "AddressLine2": "8001 Zürich", "CountryCode": "CH"},
  "Debitor": {"Name": "Pia Muster", "AddressLine1": "Dorfweg 7", "AddressLine2": "3000 Bern", "CountryCode": "CH"},
  "Currency": "CHF",
  "Amount": 120.5,
  "ReferenceNumber": null,
  "InfoText": "Lagerbeitrag"
}`

func newServer(t *testing.T, renderer bill.Renderer) http.Handler {
	t.Helper()
	format := bill.DefaultFormat()
	format.DPI = 72
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := generatebill.NewUseCase(renderer, format, generatebill.WithLogger(logger))
	return httpdelivery.NewRouter(httpdelivery.NewHandler(uc, logger))
}

func post(t *testing.T, srv http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHandleGenerateBill_SVG(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	rec := post(t, srv, "/api/GenerateQRBill", validBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=qrbill.svg", rec.Header().Get("Content-Disposition"))
	assert.NotEmpty(t, rec.Header().Get("X-Render-ID"))
	assert.Contains(t, rec.Body.String(), "Zahlteil")
	assert.Contains(t, rec.Body.String(), "120.50")
}

func TestHandleGenerateBill_PNG(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	rec := post(t, srv, "/api/qrbill?png=1", validBody)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=qrbill.png", rec.Header().Get("Content-Disposition"))

	_, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
}

func TestHandleGenerateBill_PNGFlagMustBeOne(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	rec := post(t, srv, "/api/qrbill?png=true", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
}

func TestHandleGenerateBill_NoBill(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any rendering call fails the test
	srv := newServer(t, mocks.NewMockRenderer(ctrl))

	for _, body := range []string{"", "   ", "null", "not json", `{"Account": `} {
		rec := post(t, srv, "/api/GenerateQRBill", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"No Bill found!"}`, rec.Body.String())
	}
}

func TestHandleGenerateBill_InvalidBill(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	body := strings.Replace(validBody, `"CHF"`, `"USD"`, 1)
	rec := post(t, srv, "/api/GenerateQRBill", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httpdelivery.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid bill", resp.Error)
	require.NotEmpty(t, resp.Details)
	assert.Equal(t, bill.FieldCurrency, resp.Details[0].Field)
}

func TestHandleGenerateBill_InvalidReference(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	body := strings.Replace(validBody, `"ReferenceNumber": null`, `"ReferenceNumber": "RF00 1234"`, 1)
	rec := post(t, srv, "/api/GenerateQRBill", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), bill.FieldReference)
}

func TestHandleGenerateBill_ReferenceChangesOutput(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	plain := post(t, srv, "/api/GenerateQRBill", validBody)
	withRef := post(t, srv, "/api/GenerateQRBill",
		strings.Replace(validBody, `"ReferenceNumber": null`, `"ReferenceNumber": "539007547034"`, 1))

	require.Equal(t, http.StatusOK, plain.Code)
	require.Equal(t, http.StatusOK, withRef.Code)
	assert.NotEqual(t, plain.Body.String(), withRef.Body.String())
	assert.Contains(t, withRef.Body.String(), "RF18 5390 0754 7034")
}

func TestHandleGenerateBill_OpenAmount(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	body := strings.Replace(validBody, `"Amount": 120.5`, `"Amount": null`, 1)
	rec := post(t, srv, "/api/GenerateQRBill", body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "120.50")
}

func TestHandleGenerateBill_RenderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	renderer.EXPECT().GenerateSVG(gomock.Any()).Return(nil, errors.New("boom"))
	srv := newServer(t, renderer)

	rec := post(t, srv, "/api/GenerateQRBill", validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"rendering failed"}`, rec.Body.String())
}

func TestRouter_Healthz(t *testing.T) {
	srv := newServer(t, qrbill.NewGenerator())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
