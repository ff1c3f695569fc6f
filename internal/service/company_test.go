package service_test

import (
	"testing"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/mocks"
	"saas-admin-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// CompanyServiceTestSuite defines the test suite for CompanyService
type CompanyServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockRepo       *mocks.MockCompanyRepositoryInterface
	companyService *service.CompanyService
	validator      *validator.Validate
}

// SetupTest sets up the test suite
func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockCompanyRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.companyService = service.NewCompanyService(suite.mockRepo, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *CompanyServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateCompany tests creating a company
func (suite *CompanyServiceTestSuite) TestCreateCompany() {
	req := &service.CreateCompanyRequest{
		Name:         "Tech Corp",
		Domain:       "techcorp.com",
		ContactEmail: "admin@techcorp.com",
		Plan:         "premium",
	}

	suite.mockRepo.EXPECT().
		GetByName(req.Name).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)
	suite.mockRepo.EXPECT().
		GetByDomain(req.Domain).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)
	suite.mockRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.companyService.Create(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Name, response.Name)
	assert.Equal(suite.T(), models.CompanyStatusActive, response.Status)
}

// TestCreateCompanyDuplicateName tests the unique name constraint
func (suite *CompanyServiceTestSuite) TestCreateCompanyDuplicateName() {
	req := &service.CreateCompanyRequest{
		Name:         "Tech Corp",
		ContactEmail: "admin@techcorp.com",
	}

	suite.mockRepo.EXPECT().
		GetByName(req.Name).
		Return(&models.Company{Name: req.Name}, nil).
		Times(1)

	response, err := suite.companyService.Create(req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrCompanyExists)
	assert.Nil(suite.T(), response)
}

// TestCreateCompanyValidationError tests creating a company with a bad payload
func (suite *CompanyServiceTestSuite) TestCreateCompanyValidationError() {
	req := &service.CreateCompanyRequest{
		Name:         "Tech Corp",
		ContactEmail: "not-an-email",
	}

	response, err := suite.companyService.Create(req)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
	assert.Nil(suite.T(), response)
}

// TestGetCompanyByID tests retrieving a company
func (suite *CompanyServiceTestSuite) TestGetCompanyByID() {
	company := &models.Company{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Tech Corp",
		ContactEmail: "admin@techcorp.com",
		Status:       models.CompanyStatusActive,
	}

	suite.mockRepo.EXPECT().
		GetByID(company.ID).
		Return(company, nil).
		Times(1)

	response, err := suite.companyService.GetByID(company.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), company.ID, response.ID)
	assert.Equal(suite.T(), company.Name, response.Name)
}

// TestGetCompanyByIDNotFound tests retrieving a missing company
func (suite *CompanyServiceTestSuite) TestGetCompanyByIDNotFound() {
	id := uuid.New()

	suite.mockRepo.EXPECT().
		GetByID(id).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.companyService.GetByID(id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrCompanyNotFound)
	assert.Nil(suite.T(), response)
}

// TestListCompanies tests pagination defaults
func (suite *CompanyServiceTestSuite) TestListCompanies() {
	companies := []models.Company{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "A", ContactEmail: "a@a.com", Status: models.CompanyStatusActive},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "B", ContactEmail: "b@b.com", Status: models.CompanyStatusActive},
	}

	suite.mockRepo.EXPECT().
		GetAll(20, 0).
		Return(companies, int64(2), nil).
		Times(1)

	response, err := suite.companyService.List(0, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Companies, 2)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 20, response.PageSize)
}

// TestSetCompanyStatus tests suspending a company
func (suite *CompanyServiceTestSuite) TestSetCompanyStatus() {
	company := &models.Company{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Tech Corp",
		ContactEmail: "admin@techcorp.com",
		Status:       models.CompanyStatusActive,
	}

	suite.mockRepo.EXPECT().
		GetByID(company.ID).
		Return(company, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		SetStatus(company.ID, models.CompanyStatusSuspended).
		Return(nil).
		Times(1)

	response, err := suite.companyService.SetStatus(company.ID, models.CompanyStatusSuspended)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.CompanyStatusSuspended, response.Status)
}

// TestSetCompanyStatusInvalid tests rejecting unknown statuses
func (suite *CompanyServiceTestSuite) TestSetCompanyStatusInvalid() {
	response, err := suite.companyService.SetStatus(uuid.New(), models.CompanyStatus("archived"))

	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidStatus)
	assert.Nil(suite.T(), response)
}

// TestDeleteCompany tests deleting a company
func (suite *CompanyServiceTestSuite) TestDeleteCompany() {
	id := uuid.New()

	suite.mockRepo.EXPECT().
		GetByID(id).
		Return(&models.Company{BaseModel: models.BaseModel{ID: id}}, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Delete(id).
		Return(nil).
		Times(1)

	err := suite.companyService.Delete(id)

	assert.NoError(suite.T(), err)
}

// TestCompanyServiceTestSuite runs the test suite
func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
