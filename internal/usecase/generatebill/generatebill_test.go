package generatebill_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill"
	"github.com/Xausdorf/qr-bill-hub/internal/usecase/generatebill/mocks"
)

func newRequest() generatebill.Request {
	return generatebill.Request{
		Account: "CH9300762011623852957",
		Creditor: generatebill.Address{
			Name:         "Eagles Jungschar",
			AddressLine1: "Bahnhofstrasse 1",
			AddressLine2: "8001 Zürich",
			CountryCode:  "CH",
		},
		Debtor: generatebill.Address{
			Name:         "Pia Muster",
			AddressLine1: "Dorfweg 7",
			AddressLine2: "3000 Bern",
			CountryCode:  "CH",
		},
		Currency: "CHF",
		Amount:   decimal.NewNullDecimal(decimal.RequireFromString("50")),
		InfoText: "Lagerbeitrag",
	}
}

func TestGenerateBillUseCase_Execute_SVG(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	var got *bill.Bill
	renderer.EXPECT().GenerateSVG(gomock.Any()).DoAndReturn(func(b *bill.Bill) ([]byte, error) {
		got = b
		return []byte("<svg/>"), nil
	})

	resp, err := uc.Execute(context.Background(), newRequest())

	require.NoError(t, err)
	assert.Equal(t, []byte("<svg/>"), resp.Data)
	assert.Equal(t, "image/svg+xml", resp.ContentType)
	assert.Equal(t, "qrbill.svg", resp.Filename)
	assert.False(t, resp.Cached)

	require.NotNil(t, got)
	assert.Equal(t, "Eagles Jungschar", got.Creditor.Name)
	require.NotNil(t, got.Debtor)
	assert.Equal(t, "Pia Muster", got.Debtor.Name)
	assert.Equal(t, "Lagerbeitrag", got.UnstructuredMessage)
	assert.Equal(t, bill.LanguageDE, got.Format.Language)
	assert.Empty(t, got.Reference)
}

func TestGenerateBillUseCase_Execute_PNGClosesCanvas(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	canvas := mocks.NewMockCanvas(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	gomock.InOrder(
		renderer.EXPECT().NewRasterCanvas(bill.DefaultFormat()).Return(canvas, nil),
		renderer.EXPECT().Draw(gomock.Any(), canvas).Return(nil),
		canvas.EXPECT().Bytes().Return([]byte("png"), nil),
		canvas.EXPECT().Close().Return(nil),
	)

	req := newRequest()
	req.Output = bill.OutputPNG
	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), resp.Data)
	assert.Equal(t, "image/png", resp.ContentType)
	assert.Equal(t, "qrbill.png", resp.Filename)
}

func TestGenerateBillUseCase_Execute_OutputOnlyChangesEncoding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	canvas := mocks.NewMockCanvas(ctrl)
	format := bill.Format{Language: bill.LanguageFR, FontFamily: "Arial", DPI: 150}
	uc := generatebill.NewUseCase(renderer, format)

	var svgBill, pngBill *bill.Bill
	renderer.EXPECT().GenerateSVG(gomock.Any()).DoAndReturn(func(b *bill.Bill) ([]byte, error) {
		svgBill = b
		return []byte("<svg/>"), nil
	})
	renderer.EXPECT().NewRasterCanvas(format).Return(canvas, nil)
	renderer.EXPECT().Draw(gomock.Any(), canvas).DoAndReturn(func(b *bill.Bill, _ bill.Canvas) error {
		pngBill = b
		return nil
	})
	canvas.EXPECT().Bytes().Return([]byte("png"), nil)
	canvas.EXPECT().Close().Return(nil)

	req := newRequest()
	req.ReferenceNumber = "5390 0754 7034"

	svgResp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.Output = bill.OutputPNG
	pngResp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, svgBill)
	require.NotNil(t, pngBill)
	assert.Equal(t, svgBill, pngBill)
	assert.Equal(t, format, pngBill.Format)
	assert.Equal(t, "image/svg+xml", svgResp.ContentType)
	assert.Equal(t, "image/png", pngResp.ContentType)
}

func TestGenerateBillUseCase_Execute_PNGDrawFailureStillCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	canvas := mocks.NewMockCanvas(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	verr := &bill.ValidationError{Messages: []bill.ValidationMessage{{Field: bill.FieldCurrency, Message: "bad"}}}
	renderer.EXPECT().NewRasterCanvas(gomock.Any()).Return(canvas, nil)
	renderer.EXPECT().Draw(gomock.Any(), canvas).Return(verr)
	canvas.EXPECT().Close().Return(nil)

	req := newRequest()
	req.Output = bill.OutputPNG
	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.True(t, bill.IsValidationError(err))
}

func TestGenerateBillUseCase_Execute_SetsReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	renderer.EXPECT().GenerateSVG(gomock.Any()).DoAndReturn(func(b *bill.Bill) ([]byte, error) {
		assert.Equal(t, "RF18539007547034", b.Reference)
		assert.Equal(t, bill.ReferenceCreditor, b.ReferenceType)
		return []byte("<svg/>"), nil
	})

	req := newRequest()
	req.ReferenceNumber = "5390 0754 7034"
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestGenerateBillUseCase_Execute_InvalidReferenceSkipsRendering(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	req := newRequest()
	req.ReferenceNumber = "not/valid"
	_, err := uc.Execute(context.Background(), req)

	require.Error(t, err)
	assert.True(t, bill.IsValidationError(err))
}

func TestGenerateBillUseCase_Execute_EmptyDebtorIsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	renderer.EXPECT().GenerateSVG(gomock.Any()).DoAndReturn(func(b *bill.Bill) ([]byte, error) {
		assert.Nil(t, b.Debtor)
		assert.False(t, b.HasAmount())
		return []byte("<svg/>"), nil
	})

	req := newRequest()
	req.Debtor = generatebill.Address{}
	req.Amount = decimal.NullDecimal{}
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestGenerateBillUseCase_Execute_RendererFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat())

	renderer.EXPECT().GenerateSVG(gomock.Any()).Return(nil, errors.New("qr overflow"))

	_, err := uc.Execute(context.Background(), newRequest())

	require.Error(t, err)
	assert.False(t, bill.IsValidationError(err))
	assert.Contains(t, err.Error(), "qr overflow")
}

func TestGenerateBillUseCase_Execute_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	cache := mocks.NewMockCache(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat(), generatebill.WithCache(cache, time.Hour))

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("<svg cached/>"), true, nil)

	resp, err := uc.Execute(context.Background(), newRequest())

	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, []byte("<svg cached/>"), resp.Data)
}

func TestGenerateBillUseCase_Execute_CacheMissStores(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	renderer := mocks.NewMockRenderer(ctrl)
	cache := mocks.NewMockCache(ctrl)
	uc := generatebill.NewUseCase(renderer, bill.DefaultFormat(), generatebill.WithCache(cache, time.Hour))

	var svgKey, pngKey string
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	renderer.EXPECT().GenerateSVG(gomock.Any()).Return([]byte("<svg/>"), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), []byte("<svg/>"), time.Hour).
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ time.Duration) error {
			svgKey = key
			return errors.New("redis down")
		})

	resp, err := uc.Execute(context.Background(), newRequest())
	require.NoError(t, err)
	assert.False(t, resp.Cached)

	canvas := mocks.NewMockCanvas(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
	renderer.EXPECT().NewRasterCanvas(gomock.Any()).Return(canvas, nil)
	renderer.EXPECT().Draw(gomock.Any(), canvas).Return(nil)
	canvas.EXPECT().Bytes().Return([]byte("png"), nil)
	canvas.EXPECT().Close().Return(nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), []byte("png"), time.Hour).
		DoAndReturn(func(_ context.Context, key string, _ []byte, _ time.Duration) error {
			pngKey = key
			return nil
		})

	req := newRequest()
	req.Output = bill.OutputPNG
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, svgKey, pngKey, "formats must not share cache entries")
	assert.Contains(t, svgKey, "qrbill:")
}
