//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"vehicle-rental/internal/handler/api"
	resdto "vehicle-rental/internal/handler/dto/response"
	"vehicle-rental/internal/pkg/errs"
	"vehicle-rental/internal/usecase/shared"
	"vehicle-rental/tests/common/builder"
	"vehicle-rental/tests/common/httptest"
	"vehicle-rental/tests/common/testutil"
	commandsmock "vehicle-rental/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CatalogHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCatalogCommands
	actor        shared.Actor
}

func (s *CatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCatalogCommands(s.mockCtrl)
	h := api.NewCatalogHandler(s.mockCommands)

	s.actor = builder.Admin()
	s.router.PUT("/api/admin/vehicles/:id", fakeAuth(&s.actor), h.SyncVehicle)
}

func (s *CatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) TestSyncVehicle() {
	vb := builder.NewVehicleBuilder().With(func(v *builder.VehicleBuilder) {
		v.Category = "suv"
	})
	url := "/api/admin/vehicles/" + vb.ID.String()
	reqBody := map[string]any{
		"owner_id":      vb.OwnerID,
		"price_per_day": vb.PricePerDay,
		"category":      vb.Category,
		"is_active":     true,
	}

	s.Run("success", func() {
		spec, err := vb.BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().SyncVehicle(gomock.Any(), s.actor, vb.BuildSyncInput()).Return(&spec, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")

		var body resdto.VehicleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.VehicleResponse{
			ID:          vb.ID.String(),
			OwnerID:     vb.OwnerID.String(),
			PricePerDay: 50000,
			Category:    "suv",
			IsActive:    true,
		}, body)
	})

	cases := []testCaseBooking{
		{name: "zero price", mutate: testutil.Field("price_per_day", 0), expectCode: http.StatusBadRequest},
		{name: "negative price", mutate: testutil.Field("price_per_day", -100), expectCode: http.StatusBadRequest},
		{name: "missing owner", mutate: testutil.Field("owner_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing is_active", mutate: testutil.Field("is_active", nil), expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), "bearer-token")
			s.Equal(tc.expectCode, rec.Code, rec.Body.String())
		})
	}

	s.Run("error: 400 for malformed vehicle id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/vehicles/not-a-uuid", reqBody, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 403 for non-admins", func() {
		s.mockCommands.EXPECT().SyncVehicle(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("only admins may sync vehicles"), errs.ErrUnauthorized)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})
}
