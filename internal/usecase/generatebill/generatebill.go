package generatebill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
)

const cacheKeyPrefix = "qrbill:"

type Address struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	CountryCode  string
}

type Request struct {
	Account         string
	Creditor        Address
	Debtor          Address
	Currency        string
	Amount          decimal.NullDecimal
	ReferenceNumber string
	InfoText        string
	Output          bill.OutputFormat
}

type Response struct {
	Data        []byte
	ContentType string
	Filename    string
	Cached      bool
}

type Option func(*UseCase)

func WithCache(cache bill.Cache, ttl time.Duration) Option {
	return func(uc *UseCase) {
		uc.cache = cache
		uc.cacheTTL = ttl
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(uc *UseCase) {
		uc.logger = logger
	}
}

type UseCase struct {
	renderer bill.Renderer
	format   bill.Format
	cache    bill.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

func NewUseCase(renderer bill.Renderer, format bill.Format, opts ...Option) *UseCase {
	uc := &UseCase{
		renderer: renderer,
		format:   format,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute maps the request onto a bill and renders it in the requested
// format. Bad bill data is reported as *bill.ValidationError; every other
// error is a rendering failure.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	b := &bill.Bill{
		Account:             req.Account,
		Creditor:            toAddress(req.Creditor),
		Currency:            req.Currency,
		Amount:              req.Amount,
		UnstructuredMessage: req.InfoText,
		Format:              uc.format,
	}
	if debtor := toAddress(req.Debtor); !debtor.IsEmpty() {
		b.Debtor = &debtor
	}
	if strings.TrimSpace(req.ReferenceNumber) != "" {
		if err := b.CreateAndSetReference(req.ReferenceNumber); err != nil {
			return nil, err
		}
	}

	key, err := cacheKey(b, req.Output)
	if err != nil {
		return nil, err
	}
	if data, ok := uc.lookup(ctx, key); ok {
		return newResponse(data, req.Output, true), nil
	}

	data, err := uc.render(b, req.Output)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, key, data)
	return newResponse(data, req.Output, false), nil
}

func (uc *UseCase) render(b *bill.Bill, out bill.OutputFormat) ([]byte, error) {
	if out != bill.OutputPNG {
		data, err := uc.renderer.GenerateSVG(b)
		if err != nil {
			return nil, fmt.Errorf("generate svg: %w", err)
		}
		return data, nil
	}

	canvas, err := uc.renderer.NewRasterCanvas(b.Format)
	if err != nil {
		return nil, fmt.Errorf("create raster canvas: %w", err)
	}
	defer func() {
		if cerr := canvas.Close(); cerr != nil {
			uc.logger.Warn("raster canvas close failed", "error", cerr)
		}
	}()

	if err := uc.renderer.Draw(b, canvas); err != nil {
		return nil, fmt.Errorf("draw png: %w", err)
	}
	data, err := canvas.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return data, nil
}

func (uc *UseCase) lookup(ctx context.Context, key string) ([]byte, bool) {
	if uc.cache == nil {
		return nil, false
	}
	data, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn("render cache read failed", "error", err)
		return nil, false
	}
	if ok {
		uc.logger.Debug("render cache hit", "key", key)
	}
	return data, ok
}

func (uc *UseCase) store(ctx context.Context, key string, data []byte) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("render cache write failed", "error", err)
	}
}

func cacheKey(b *bill.Bill, out bill.OutputFormat) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	h := sha256.New()
	h.Write(raw)
	h.Write([]byte(out.String()))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

func newResponse(data []byte, out bill.OutputFormat, cached bool) *Response {
	return &Response{
		Data:        data,
		ContentType: out.ContentType(),
		Filename:    out.Filename(),
		Cached:      cached,
	}
}

func toAddress(a Address) bill.Address {
	return bill.Address{
		Name:         a.Name,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		CountryCode:  a.CountryCode,
	}
}
