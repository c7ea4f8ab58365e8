package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill"
)

const maxBodyBytes = 64 << 10

type Handler struct {
	generateBillUC *generatebill.UseCase
	logger         *slog.Logger
}

func NewHandler(generateBillUC *generatebill.UseCase, logger *slog.Logger) *Handler {
	return &Handler{
		generateBillUC: generateBillUC,
		logger:         logger,
	}
}

type AddressRequest struct {
	Name         string `json:"Name"`
	AddressLine1 string `json:"AddressLine1"`
	AddressLine2 string `json:"AddressLine2"`
	CountryCode  string `json:"CountryCode"`
}

type BillRequest struct {
	Account         string              `json:"Account"`
	Creditor        AddressRequest      `json:"Creditor"`
	Debitor         AddressRequest      `json:"Debitor"`
	Currency        string              `json:"Currency"`
	Amount          decimal.NullDecimal `json:"Amount"`
	ReferenceNumber *string             `json:"ReferenceNumber"`
	InfoText        *string             `json:"InfoText"`
}

type ErrorResponse struct {
	Error   string                   `json:"error"`
	Details []bill.ValidationMessage `json:"details,omitempty"`
}

func (h *Handler) HandleGenerateBill(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("generate bill request received", "request_id", requestID(r))

	req, err := decodeBill(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Info("no bill in request", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "No Bill found!"})
		return
	}
	h.logger.Info("bill reference", "reference_number", deref(req.ReferenceNumber))

	output := bill.OutputSVG
	if r.URL.Query().Get("png") == "1" {
		output = bill.OutputPNG
	}

	resp, err := h.generateBillUC.Execute(r.Context(), generatebill.Request{
		Account:         req.Account,
		Creditor:        toAddress(req.Creditor),
		Debtor:          toAddress(req.Debitor),
		Currency:        req.Currency,
		Amount:          req.Amount,
		ReferenceNumber: deref(req.ReferenceNumber),
		InfoText:        deref(req.InfoText),
		Output:          output,
	})
	if err != nil {
		var verr *bill.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid bill", Details: verr.Messages})
			return
		}
		h.logger.Error("bill rendering failed", "error", err, "format", output.String())
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "rendering failed"})
		return
	}

	renderID := uuid.NewString()
	h.logger.Info("bill rendered", "render_id", renderID, "format", output.String(),
		"bytes", len(resp.Data), "cached", resp.Cached)

	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+resp.Filename)
	w.Header().Set("X-Render-ID", renderID)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.Data)
}

// decodeBill reads the whole body. An empty body, malformed JSON or a JSON
// null all mean there is no bill.
func decodeBill(body io.Reader) (*BillRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, bill.ErrNoBill
	}

	var req BillRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func toAddress(a AddressRequest) generatebill.Address {
	return generatebill.Address{
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		CountryCode:  a.CountryCode,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
