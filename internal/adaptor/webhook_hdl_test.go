package adaptor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"activity-booking/internal/adaptor"
	"activity-booking/internal/usecase"
	"activity-booking/internal/usecase/mocks"
	"activity-booking/pkg/asaas"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockService *mocks.MockReservationService
	handler     *adaptor.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockService = mocks.NewMockReservationService(s.mockCtrl)
	s.handler = adaptor.NewWebhookHandler(s.mockService, zap.NewNop())
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) post(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.Receive(rec, req)
	return rec
}

const confirmedEvent = `{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_123","externalReference":"3f1c2a9e-8a5b-4a43-9a47-1f7f0c6f8e11"}}`

func (s *WebhookHandlerTestSuite) TestReceive() {
	s.Run("confirmed payment acknowledged", func() {
		s.mockService.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, event *asaas.WebhookEvent) (usecase.ConfirmResult, error) {
				s.Equal(asaas.EventPaymentConfirmed, event.Event)
				s.Equal("3f1c2a9e-8a5b-4a43-9a47-1f7f0c6f8e11", event.ExternalReference())
				return usecase.ConfirmAcknowledged, nil
			}).Times(1)

		rec := s.post(confirmedEvent)
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("other events acknowledged", func() {
		s.mockService.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
			Return(usecase.ConfirmIgnored, nil).Times(1)

		rec := s.post(`{"event":"PAYMENT_CREATED","payment":{"id":"pay_123"}}`)
		s.Equal(http.StatusOK, rec.Code)
	})

	for _, body := range []string{
		`{"event":"PAYMENT_CREATED","payment":"pay_1"}`,
		`{"event":"PAYMENT_OVERDUE","payment":{"externalReference":123}}`,
		`{"event":"PAYMENT_UPDATED","payment":[1,2]}`,
	} {
		s.Run("other events acknowledged whatever the payment shape", func() {
			s.mockService.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, event *asaas.WebhookEvent) (usecase.ConfirmResult, error) {
					s.Nil(event.Payment)
					return usecase.ConfirmIgnored, nil
				}).Times(1)

			rec := s.post(body)
			s.Equal(http.StatusOK, rec.Code)
		})
	}

	s.Run("confirmed payment with unreadable payment", func() {
		rec := s.post(`{"event":"PAYMENT_CONFIRMED","payment":{"externalReference":123}}`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(adaptor.MsgWebhookInvalidBody, rec.Body.String())
	})

	s.Run("malformed body", func() {
		rec := s.post(`not json`)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Equal(adaptor.MsgWebhookInvalidBody, rec.Body.String())
	})

	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "missing reference",
			err:  errors.Mark(usecase.ErrMissingReference, usecase.ErrValidation),
			code: http.StatusBadRequest,
			body: adaptor.MsgWebhookMissingReference,
		},
		{
			name: "unknown reference",
			err:  errors.Mark(errors.New("no reservation"), usecase.ErrNotFound),
			code: http.StatusNotFound,
			body: adaptor.MsgWebhookUnknownReference,
		},
		{
			name: "store failure",
			err:  errors.Mark(errors.New("connection reset"), usecase.ErrStore),
			code: http.StatusInternalServerError,
			body: adaptor.MsgWebhookFailed,
		},
		{
			name: "notify failure",
			err:  errors.Mark(errors.New("smtp timeout"), usecase.ErrNotify),
			code: http.StatusInternalServerError,
			body: adaptor.MsgWebhookFailed,
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().ConfirmPayment(gomock.Any(), gomock.Any()).
				Return(usecase.ConfirmFailed, tc.err).Times(1)

			rec := s.post(confirmedEvent)
			s.Equal(tc.code, rec.Code)
			s.Equal(tc.body, rec.Body.String())
		})
	}
}
