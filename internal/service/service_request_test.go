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

// ServiceRequestServiceTestSuite defines the test suite for ServiceRequestService
type ServiceRequestServiceTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockRepo         *mocks.MockServiceRequestRepositoryInterface
	mockCompanyRepo  *mocks.MockCompanyRepositoryInterface
	mockTypeRepo     *mocks.MockServiceTypeRepositoryInterface
	mockInstanceRepo *mocks.MockServiceInstanceRepositoryInterface
	requestService   *service.ServiceRequestService
	validator        *validator.Validate
}

// SetupTest sets up the test suite
func (suite *ServiceRequestServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockServiceRequestRepositoryInterface(suite.ctrl)
	suite.mockCompanyRepo = mocks.NewMockCompanyRepositoryInterface(suite.ctrl)
	suite.mockTypeRepo = mocks.NewMockServiceTypeRepositoryInterface(suite.ctrl)
	suite.mockInstanceRepo = mocks.NewMockServiceInstanceRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.requestService = service.NewServiceRequestService(
		suite.mockRepo,
		suite.mockCompanyRepo,
		suite.mockTypeRepo,
		suite.mockInstanceRepo,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *ServiceRequestServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ServiceRequestServiceTestSuite) activeCompany() *models.Company {
	return &models.Company{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Tech Corp",
		ContactEmail: "admin@techcorp.com",
		Status:       models.CompanyStatusActive,
	}
}

// TestCreateRequest tests filing a service request
func (suite *ServiceRequestServiceTestSuite) TestCreateRequest() {
	company := suite.activeCompany()
	typeID := uuid.New()
	requestedBy := uuid.New()
	req := &service.CreateServiceRequestRequest{
		CompanyID:     company.ID,
		ServiceTypeID: typeID,
		Notes:         "We want the WhatsApp bot",
	}

	suite.mockCompanyRepo.EXPECT().
		GetByID(company.ID).
		Return(company, nil).
		Times(1)
	suite.mockTypeRepo.EXPECT().
		GetByID(typeID).
		Return(&models.ServiceType{BaseModel: models.BaseModel{ID: typeID}}, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.requestService.Create(req, requestedBy)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ServiceRequestPending, response.Status)
	assert.Equal(suite.T(), requestedBy, response.RequestedBy)
}

// TestCreateRequestSuspendedCompany tests that suspended companies cannot file requests
func (suite *ServiceRequestServiceTestSuite) TestCreateRequestSuspendedCompany() {
	company := suite.activeCompany()
	company.Status = models.CompanyStatusSuspended
	req := &service.CreateServiceRequestRequest{
		CompanyID:     company.ID,
		ServiceTypeID: uuid.New(),
	}

	suite.mockCompanyRepo.EXPECT().
		GetByID(company.ID).
		Return(company, nil).
		Times(1)

	response, err := suite.requestService.Create(req, uuid.New())

	assert.ErrorIs(suite.T(), err, apperrors.ErrCompanySuspended)
	assert.Nil(suite.T(), response)
}

// TestCreateRequestUnknownType tests filing against a missing service type
func (suite *ServiceRequestServiceTestSuite) TestCreateRequestUnknownType() {
	company := suite.activeCompany()
	typeID := uuid.New()
	req := &service.CreateServiceRequestRequest{
		CompanyID:     company.ID,
		ServiceTypeID: typeID,
	}

	suite.mockCompanyRepo.EXPECT().
		GetByID(company.ID).
		Return(company, nil).
		Times(1)
	suite.mockTypeRepo.EXPECT().
		GetByID(typeID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.requestService.Create(req, uuid.New())

	assert.ErrorIs(suite.T(), err, apperrors.ErrServiceTypeNotFound)
	assert.Nil(suite.T(), response)
}

// TestApproveRequestProvisionsInstance tests approval plus provisioning
func (suite *ServiceRequestServiceTestSuite) TestApproveRequestProvisionsInstance() {
	request := &models.ServiceRequest{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		CompanyID:     uuid.New(),
		ServiceTypeID: uuid.New(),
		RequestedBy:   uuid.New(),
		Status:        models.ServiceRequestPending,
	}
	reviewedBy := uuid.New()

	suite.mockRepo.EXPECT().
		GetByID(request.ID).
		Return(request, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)
	suite.mockInstanceRepo.EXPECT().
		GetByCompanyAndType(request.CompanyID, request.ServiceTypeID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)
	suite.mockInstanceRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(instance *models.ServiceInstance) error {
			assert.Equal(suite.T(), request.CompanyID, instance.CompanyID)
			assert.Equal(suite.T(), models.ServiceStatusActive, instance.Status)
			return nil
		}).
		Times(1)

	response, err := suite.requestService.Approve(request.ID, reviewedBy)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ServiceRequestApproved, response.Status)
	assert.Equal(suite.T(), &reviewedBy, response.ReviewedBy)
	assert.NotNil(suite.T(), response.ReviewedAt)
}

// TestApproveRequestSkipsExistingInstance tests that approval does not duplicate instances
func (suite *ServiceRequestServiceTestSuite) TestApproveRequestSkipsExistingInstance() {
	request := &models.ServiceRequest{
		BaseModel:     models.BaseModel{ID: uuid.New()},
		CompanyID:     uuid.New(),
		ServiceTypeID: uuid.New(),
		Status:        models.ServiceRequestPending,
	}

	suite.mockRepo.EXPECT().
		GetByID(request.ID).
		Return(request, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)
	suite.mockInstanceRepo.EXPECT().
		GetByCompanyAndType(request.CompanyID, request.ServiceTypeID).
		Return(&models.ServiceInstance{}, nil).
		Times(1)

	response, err := suite.requestService.Approve(request.ID, uuid.New())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ServiceRequestApproved, response.Status)
}

// TestRejectRequest tests rejecting a pending request
func (suite *ServiceRequestServiceTestSuite) TestRejectRequest() {
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: uuid.New()},
		CompanyID: uuid.New(),
		Status:    models.ServiceRequestPending,
	}

	suite.mockRepo.EXPECT().
		GetByID(request.ID).
		Return(request, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.requestService.Reject(request.ID, uuid.New())

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ServiceRequestRejected, response.Status)
}

// TestReviewAlreadyReviewed tests the single-review invariant
func (suite *ServiceRequestServiceTestSuite) TestReviewAlreadyReviewed() {
	request := &models.ServiceRequest{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Status:    models.ServiceRequestApproved,
	}

	suite.mockRepo.EXPECT().
		GetByID(request.ID).
		Return(request, nil).
		Times(1)

	response, err := suite.requestService.Reject(request.ID, uuid.New())

	assert.ErrorIs(suite.T(), err, apperrors.ErrRequestAlreadyReviewed)
	assert.Nil(suite.T(), response)
}

// TestServiceRequestServiceTestSuite runs the test suite
func TestServiceRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceRequestServiceTestSuite))
}
