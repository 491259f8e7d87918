//go:build unit

package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storebot/internal/handler/api"
	"storebot/internal/usecase/commands"
	commandsmock "storebot/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockReconcile *commandsmock.MockReconcileCommands
	handler       *api.WebhookHandler
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockReconcile = commandsmock.NewMockReconcileCommands(s.mockCtrl)
	s.handler = api.NewWebhookHandler(s.mockReconcile)

	s.router.POST("/webhooks/payments", s.handler.ReceivePayment)
}

func (s *WebhookHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) postNotification(body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func notificationBody(chargeID, status string) map[string]any {
	return map[string]any{
		"action": "payment.updated",
		"type":   "payment",
		"data":   map[string]any{"id": chargeID, "status": status},
	}
}

// Every business outcome must answer 200: the gateway only needs to know the
// notification was consumed, not what the engine decided.
func (s *WebhookHandlerTestSuite) TestOutcomesMapToOK() {
	outcomes := []commands.Outcome{
		commands.OutcomeIgnored,
		commands.OutcomeAlreadyProcessed,
		commands.OutcomeApproved,
		commands.OutcomeExpiredOnArrival,
		commands.OutcomeFailed,
	}

	for _, outcome := range outcomes {
		s.Run(string(outcome), func() {
			s.mockReconcile.EXPECT().
				HandleNotification(gomock.Any(), commands.PaymentEvent{ChargeID: "555", ClaimedStatus: "approved"}).
				Return(outcome, nil)

			w := s.postNotification(notificationBody("555", "approved"))

			s.Equal(http.StatusOK, w.Code)
			s.Contains(w.Body.String(), string(outcome))
		})
	}
}

func (s *WebhookHandlerTestSuite) TestMalformedBodyReturnsBadRequest() {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *WebhookHandlerTestSuite) TestGatewayUnavailableReturnsBadGateway() {
	s.mockReconcile.EXPECT().
		HandleNotification(gomock.Any(), gomock.Any()).
		Return(commands.Outcome(""), commands.ErrGatewayUnavailable)

	w := s.postNotification(notificationBody("555", "approved"))

	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *WebhookHandlerTestSuite) TestStoreFailureReturnsInternalError() {
	s.mockReconcile.EXPECT().
		HandleNotification(gomock.Any(), gomock.Any()).
		Return(commands.Outcome(""), commands.ErrDatabaseOperationFailed)

	w := s.postNotification(notificationBody("555", "approved"))

	s.Equal(http.StatusInternalServerError, w.Code)
}
