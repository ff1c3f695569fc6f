//go:build integration
// +build integration

package repository

import (
	"testing"

	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// CompanyRepositoryTestSuite tests the CompanyRepository
type CompanyRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *CompanyRepository
	factory       *testutils.CompanyFactory
}

// SetupSuite runs before all tests in the suite
func (suite *CompanyRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewCompanyRepository(suite.baseTestSuite.DB)
	suite.factory = testutils.NewCompanyFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *CompanyRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *CompanyRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *CompanyRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateAndGetByID tests the basic round trip
func (suite *CompanyRepositoryTestSuite) TestCreateAndGetByID() {
	company := suite.factory.Create()
	suite.NoError(suite.repo.Create(company))

	retrieved, err := suite.repo.GetByID(company.ID)

	suite.NoError(err)
	suite.Equal(company.Name, retrieved.Name)
	suite.Equal(models.CompanyStatusActive, retrieved.Status)
}

// TestGetByName tests the unique-name lookup
func (suite *CompanyRepositoryTestSuite) TestGetByName() {
	company := suite.factory.WithName("Acme Industries")
	suite.NoError(suite.repo.Create(company))

	retrieved, err := suite.repo.GetByName("Acme Industries")

	suite.NoError(err)
	suite.Equal(company.ID, retrieved.ID)

	_, err = suite.repo.GetByName("No Such Company")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestUniqueNameConstraint tests that duplicate names are rejected
func (suite *CompanyRepositoryTestSuite) TestUniqueNameConstraint() {
	first := suite.factory.WithName("Acme Industries")
	suite.NoError(suite.repo.Create(first))

	duplicate := suite.factory.WithName("Acme Industries")
	suite.Error(suite.repo.Create(duplicate))
}

// TestGetAllPagination tests paging and the total count
func (suite *CompanyRepositoryTestSuite) TestGetAllPagination() {
	for i := 0; i < 5; i++ {
		suite.NoError(suite.repo.Create(suite.factory.Create()))
	}

	companies, total, err := suite.repo.GetAll(2, 0)

	suite.NoError(err)
	suite.Equal(int64(5), total)
	suite.Len(companies, 2)
}

// TestSetStatus tests suspending and reactivating
func (suite *CompanyRepositoryTestSuite) TestSetStatus() {
	company := suite.factory.Create()
	suite.NoError(suite.repo.Create(company))

	suite.NoError(suite.repo.SetStatus(company.ID, models.CompanyStatusSuspended))

	retrieved, err := suite.repo.GetByID(company.ID)
	suite.NoError(err)
	suite.Equal(models.CompanyStatusSuspended, retrieved.Status)
}

// TestDelete tests deleting a company
func (suite *CompanyRepositoryTestSuite) TestDelete() {
	company := suite.factory.Create()
	suite.NoError(suite.repo.Create(company))

	suite.NoError(suite.repo.Delete(company.ID))

	_, err := suite.repo.GetByID(company.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDeleteUnknownIDIsNoError tests gorm's delete semantics
func (suite *CompanyRepositoryTestSuite) TestDeleteUnknownIDIsNoError() {
	suite.NoError(suite.repo.Delete(uuid.New()))
}

// TestCompanyRepositoryTestSuite runs the test suite
func TestCompanyRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyRepositoryTestSuite))
}
