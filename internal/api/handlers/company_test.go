package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/mocks"
	"saas-admin-backend/internal/service"
	"saas-admin-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// CompanyHandlerTestSuite defines the test suite for CompanyHandler
type CompanyHandlerTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockCompanyService *mocks.MockCompanyServiceInterface
	handler            *CompanyHandler
	httpSuite          *testutils.HTTPTestSuite
}

// SetupTest sets up the test suite
func (suite *CompanyHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockCompanyService = mocks.NewMockCompanyServiceInterface(suite.ctrl)

	// Create handler with mock service
	suite.handler = NewCompanyHandler(suite.mockCompanyService)

	// Setup HTTP test suite
	suite.httpSuite = testutils.SetupHTTPTest()

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	companies := v1.Group("/companies")
	{
		companies.GET("", suite.handler.ListCompanies)
		companies.POST("", suite.handler.CreateCompany)
		companies.GET("/:id", suite.handler.GetCompany)
		companies.PUT("/:id", suite.handler.UpdateCompany)
		companies.PATCH("/:id/status", suite.handler.SetCompanyStatus)
		companies.DELETE("/:id", suite.handler.DeleteCompany)
	}
}

// TearDownTest cleans up after each test
func (suite *CompanyHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateCompany tests creating a company
func (suite *CompanyHandlerTestSuite) TestCreateCompany() {
	companyID := uuid.New()
	requestBody := map[string]interface{}{
		"name":          "Tech Corp",
		"domain":        "techcorp.com",
		"contact_email": "admin@techcorp.com",
		"plan":          "premium",
	}

	expectedResponse := &service.CompanyResponse{
		ID:           companyID,
		Name:         "Tech Corp",
		Domain:       "techcorp.com",
		ContactEmail: "admin@techcorp.com",
		Status:       models.CompanyStatusActive,
		Plan:         "premium",
	}

	suite.mockCompanyService.EXPECT().
		Create(gomock.Any()).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/companies", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.CompanyResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), expectedResponse.Name, response.Name)
	assert.Equal(suite.T(), models.CompanyStatusActive, response.Status)
}

// TestCreateCompanyDuplicate tests the conflict mapping
func (suite *CompanyHandlerTestSuite) TestCreateCompanyDuplicate() {
	requestBody := map[string]interface{}{
		"name":          "Tech Corp",
		"contact_email": "admin@techcorp.com",
	}

	suite.mockCompanyService.EXPECT().
		Create(gomock.Any()).
		Return(nil, apperrors.ErrCompanyExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/companies", requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusConflict, "")
}

// TestGetCompany tests retrieving a company
func (suite *CompanyHandlerTestSuite) TestGetCompany() {
	companyID := uuid.New()
	expectedResponse := &service.CompanyResponse{
		ID:           companyID,
		Name:         "Tech Corp",
		ContactEmail: "admin@techcorp.com",
		Status:       models.CompanyStatusActive,
	}

	suite.mockCompanyService.EXPECT().
		GetByID(companyID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/companies/%s", companyID), nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.CompanyResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), companyID, response.ID)
}

// TestGetCompanyNotFound tests retrieving a missing company
func (suite *CompanyHandlerTestSuite) TestGetCompanyNotFound() {
	companyID := uuid.New()

	suite.mockCompanyService.EXPECT().
		GetByID(companyID).
		Return(nil, apperrors.ErrCompanyNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", fmt.Sprintf("/api/v1/companies/%s", companyID), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "")
}

// TestGetCompanyInvalidID tests UUID validation
func (suite *CompanyHandlerTestSuite) TestGetCompanyInvalidID() {
	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/companies/not-a-uuid", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid company ID")
}

// TestListCompanies tests listing with pagination parameters
func (suite *CompanyHandlerTestSuite) TestListCompanies() {
	expectedResponse := &service.CompanyListResponse{
		Companies: []service.CompanyResponse{
			{ID: uuid.New(), Name: "A", Status: models.CompanyStatusActive},
			{ID: uuid.New(), Name: "B", Status: models.CompanyStatusSuspended},
		},
		Total:    2,
		Page:     2,
		PageSize: 10,
	}

	suite.mockCompanyService.EXPECT().
		List(2, 10).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/companies?page=2&page_size=10", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.CompanyListResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response.Companies, 2)
	assert.Equal(suite.T(), int64(2), response.Total)
}

// TestSetCompanyStatus tests suspending a company
func (suite *CompanyHandlerTestSuite) TestSetCompanyStatus() {
	companyID := uuid.New()
	requestBody := map[string]interface{}{"status": "suspended"}

	expectedResponse := &service.CompanyResponse{
		ID:     companyID,
		Name:   "Tech Corp",
		Status: models.CompanyStatusSuspended,
	}

	suite.mockCompanyService.EXPECT().
		SetStatus(companyID, models.CompanyStatusSuspended).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PATCH", fmt.Sprintf("/api/v1/companies/%s/status", companyID), requestBody)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.CompanyResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), models.CompanyStatusSuspended, response.Status)
}

// TestSetCompanyStatusInvalid tests unknown status mapping
func (suite *CompanyHandlerTestSuite) TestSetCompanyStatusInvalid() {
	companyID := uuid.New()
	requestBody := map[string]interface{}{"status": "archived"}

	suite.mockCompanyService.EXPECT().
		SetStatus(companyID, models.CompanyStatus("archived")).
		Return(nil, apperrors.ErrInvalidStatus).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PATCH", fmt.Sprintf("/api/v1/companies/%s/status", companyID), requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "")
}

// TestDeleteCompany tests deleting a company
func (suite *CompanyHandlerTestSuite) TestDeleteCompany() {
	companyID := uuid.New()

	suite.mockCompanyService.EXPECT().
		Delete(companyID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/companies/%s", companyID), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestCompanyHandlerTestSuite runs the test suite
func TestCompanyHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyHandlerTestSuite))
}
