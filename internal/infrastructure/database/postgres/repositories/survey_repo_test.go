package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

var shipCols = []string{
	"id", "company_id", "name",
	"anniversary_day", "anniversary_month", "anniversary_source_certificate_id",
	"anniversary_manual_override", "anniversary_auto_calculated",
	"special_survey_from", "special_survey_to", "special_survey_cycle_type",
	"special_survey_intermediate_required", "special_survey_source_certificate_id",
	"last_docking", "last_docking_2", "next_docking", "test_report_intervals",
}

var certCols = []string{
	"id", "ship_id", "cert_name", "cert_type", "cert_abbreviation",
	"issue_date", "valid_date", "last_endorse", "status",
}

type SurveyRepoTestSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo *SurveyRepository
}

func (s *SurveyRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)
	log := logging.NewNopLogger()
	s.repo = NewSurveyRepository(postgres.NewConnectionWithDB(s.db, log), log)
}

func (s *SurveyRepoTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *SurveyRepoTestSuite) TestGetShip_Found() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE id =").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(shipCols).AddRow(
			"s1", "acme", "MV Aurora",
			int64(3), int64(9), "c9", true, false,
			time.Date(2023, 7, 20, 0, 0, 0, 0, time.UTC), time.Date(2028, 7, 19, 0, 0, 0, 0, time.UTC),
			"Certificate of Class", true, "c2",
			"05/05/2022", nil, nil, []byte(`{"EEBD": 6}`),
		))

	ship, err := s.repo.GetShip(context.Background(), "s1")
	s.Require().NoError(err)
	s.Equal("MV Aurora", ship.Name)
	s.Require().NotNil(ship.Anniversary)
	s.Equal(domain.AnniversaryDate{Day: 3, Month: 9, SourceCertificateID: "c9", ManualOverride: true}, *ship.Anniversary)
	s.Require().NotNil(ship.SpecialSurveyCycle)
	s.Equal(domain.Date(2028, 7, 19), ship.SpecialSurveyCycle.To)
	s.Equal("05/05/2022", ship.LastDocking)
	s.Empty(ship.LastDocking2)
	s.Equal(map[string]int{"EEBD": 6}, ship.TestReportIntervals)
}

func (s *SurveyRepoTestSuite) TestGetShip_NullOptionalColumns() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE id =").
		WithArgs("s2").
		WillReturnRows(sqlmock.NewRows(shipCols).AddRow(
			"s2", "acme", "MV Boreas",
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil,
		))

	ship, err := s.repo.GetShip(context.Background(), "s2")
	s.Require().NoError(err)
	s.Nil(ship.Anniversary)
	s.Nil(ship.SpecialSurveyCycle)
	s.Nil(ship.TestReportIntervals)
}

func (s *SurveyRepoTestSuite) TestGetShip_NotFound() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE id =").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := s.repo.GetShip(context.Background(), "nope")
	s.True(errors.IsCode(err, errors.ErrCodeShipNotFound))
	s.True(errors.IsNotFound(err))
}

func (s *SurveyRepoTestSuite) TestGetShip_MalformedIntervals() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE id =").
		WithArgs("s3").
		WillReturnRows(sqlmock.NewRows(shipCols).AddRow(
			"s3", "acme", "MV Cetus",
			nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			nil, nil, nil, []byte(`{"EEBD": "six"}`),
		))

	_, err := s.repo.GetShip(context.Background(), "s3")
	s.True(errors.IsCode(err, errors.ErrCodeIntervalTableInvalid))
}

func (s *SurveyRepoTestSuite) TestListShipsByCompany() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE company_id =").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(shipCols).
			AddRow("s1", "acme", "A", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil).
			AddRow("s2", "acme", "B", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, "2021-01-01", "2023-06-30", nil, nil))

	ships, err := s.repo.ListShipsByCompany(context.Background(), "acme")
	s.Require().NoError(err)
	s.Require().Len(ships, 2)
	s.Equal("2023-06-30", ships[1].LastDocking2)
}

func (s *SurveyRepoTestSuite) TestListShipsByCompany_MalformedIntervalsSkipsOverridesOnly() {
	s.mock.ExpectQuery("SELECT .* FROM ships WHERE company_id =").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(shipCols).
			AddRow("s1", "acme", "A", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, []byte(`{"EEBD":6}`)).
			AddRow("s2", "acme", "B", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, []byte(`{"EEBD":"six"}`)))

	ships, err := s.repo.ListShipsByCompany(context.Background(), "acme")
	s.Require().NoError(err)
	s.Require().Len(ships, 2)
	s.Equal(map[string]int{"EEBD": 6}, ships[0].TestReportIntervals)
	s.Equal("s2", ships[1].ID)
	s.Nil(ships[1].TestReportIntervals)
}

func (s *SurveyRepoTestSuite) TestListShipsByCompany_QueryError() {
	s.mock.ExpectQuery("SELECT .* FROM ships").WillReturnError(stderrors.New("conn reset"))

	_, err := s.repo.ListShipsByCompany(context.Background(), "acme")
	s.True(errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func (s *SurveyRepoTestSuite) TestGetCertificate() {
	s.mock.ExpectQuery("SELECT .* FROM certificates WHERE id =").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(certCols).
			AddRow("c1", "s1", "Interim Load Line Certificate", "interim", nil, nil, "07/05/2026", nil, "active"))

	c, err := s.repo.GetCertificate(context.Background(), "c1")
	s.Require().NoError(err)
	s.Equal(domain.CertTypeInterim, c.CertType)
	s.Equal("07/05/2026", c.ValidDate)
	s.Empty(c.IssueDate)
	s.Equal("active", c.Status)
}

func (s *SurveyRepoTestSuite) TestGetCertificate_NotFound() {
	s.mock.ExpectQuery("SELECT .* FROM certificates WHERE id =").
		WithArgs("x").
		WillReturnError(sql.ErrNoRows)

	_, err := s.repo.GetCertificate(context.Background(), "x")
	s.True(errors.IsCode(err, errors.ErrCodeCertificateNotFound))
}

func (s *SurveyRepoTestSuite) TestListCertificatesByShips() {
	s.mock.ExpectQuery(`FROM certificates WHERE ship_id IN \(\$1, \$2\)`).
		WithArgs("s1", "s2").
		WillReturnRows(sqlmock.NewRows(certCols).
			AddRow("c1", "s1", "IOPP", "Full Term", "IOPP", "2023-01-01", "2028-01-01", nil, nil).
			AddRow("c2", "s2", "ISSC", "Short Term", "ISSC", nil, "2026-06-01", nil, nil))

	certs, err := s.repo.ListCertificatesByShips(context.Background(), []string{"s1", "s2"})
	s.Require().NoError(err)
	s.Require().Len(certs, 2)
	s.Equal(domain.CertTypeShortTerm, certs[1].CertType)
}

func (s *SurveyRepoTestSuite) TestListCertificatesByShips_Empty() {
	certs, err := s.repo.ListCertificatesByShips(context.Background(), nil)
	s.NoError(err)
	s.NotNil(certs)
	s.Empty(certs)
}

func (s *SurveyRepoTestSuite) TestSaveNextSurvey() {
	next := domain.Date(2026, 2, 7)
	res := domain.NextSurveyResult{
		Bucket: domain.BucketInterim, NextSurvey: &next, NextSurveyType: "Initial",
		Annotation: domain.AnnotationMinus3M, Reasoning: "r",
	}
	s.mock.ExpectExec("UPDATE certificates SET").
		WithArgs("c1", "2026-02-07", "Initial", "-3M", "r").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.SaveNextSurvey(context.Background(), "c1", res))
}

func (s *SurveyRepoTestSuite) TestSaveNextSurvey_NullDateAndMissingRow() {
	res := domain.NextSurveyResult{Bucket: domain.BucketConditionCertificate, Annotation: domain.AnnotationDirect}
	s.mock.ExpectExec("UPDATE certificates SET").
		WithArgs("gone", nil, nil, "direct", "").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.SaveNextSurvey(context.Background(), "gone", res)
	s.True(errors.IsCode(err, errors.ErrCodeCertificateNotFound))
}

func (s *SurveyRepoTestSuite) TestSaveShipComputation_Commits() {
	next := domain.Date(2025, 5, 5)
	comp := domain.ShipComputation{
		ShipID:      "s1",
		Anniversary: &domain.AnniversaryDate{Day: 19, Month: 7, SourceCertificateID: "c2", AutoCalculated: true},
		Docking:     domain.DockingSchedule{NextDocking: &next, IntervalMonths: 36},
		Certificates: []domain.CertificateComputation{
			{CertificateID: "c1", Result: domain.NextSurveyResult{Annotation: domain.AnnotationNone}},
		},
	}
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE ships SET").
		WithArgs("s1", int64(19), int64(7), "c2", true, nil, nil, nil, false, nil, "2025-05-05", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec("UPDATE certificates SET").
		WithArgs("c1", nil, nil, "none", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(s.repo.SaveShipComputation(context.Background(), comp))
}

func (s *SurveyRepoTestSuite) TestSaveShipComputation_KeepsNextDockingWhenDatesUnparseable() {
	comp := domain.ShipComputation{
		ShipID:         "s1",
		Docking:        domain.DockingSchedule{IntervalMonths: 36, Reasoning: "bad last_docking"},
		DockingSkipped: true,
	}
	s.mock.ExpectBegin()
	s.mock.ExpectExec(`next_docking = CASE WHEN \$12 THEN \$11 ELSE next_docking END`).
		WithArgs("s1", nil, nil, nil, false, nil, nil, nil, false, nil, nil, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	s.NoError(s.repo.SaveShipComputation(context.Background(), comp))
}

func (s *SurveyRepoTestSuite) TestSaveShipComputation_RollsBackOnFailure() {
	comp := domain.ShipComputation{
		ShipID:       "s1",
		Certificates: []domain.CertificateComputation{{CertificateID: "c1"}},
	}
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE ships SET").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectExec("UPDATE certificates SET").WillReturnError(stderrors.New("deadlock"))
	s.mock.ExpectRollback()

	err := s.repo.SaveShipComputation(context.Background(), comp)
	s.True(errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func (s *SurveyRepoTestSuite) TestSaveShipComputation_UnknownShip() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE ships SET").WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectRollback()

	err := s.repo.SaveShipComputation(context.Background(), domain.ShipComputation{ShipID: "ghost"})
	s.True(errors.IsCode(err, errors.ErrCodeShipNotFound))
}

func TestSurveyRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SurveyRepoTestSuite))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(1, 0))
	assert.Equal(t, "$1", placeholders(1, 1))
	assert.Equal(t, "$3, $4, $5", placeholders(3, 3))
}

//Personal.AI order the ending
