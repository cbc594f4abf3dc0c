package repositories

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/goccy/go-json"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

const shipColumns = `
	id, company_id, name,
	anniversary_day, anniversary_month, anniversary_source_certificate_id,
	anniversary_manual_override, anniversary_auto_calculated,
	special_survey_from, special_survey_to, special_survey_cycle_type,
	special_survey_intermediate_required, special_survey_source_certificate_id,
	last_docking, last_docking_2, next_docking, test_report_intervals`

const certificateColumns = `
	id, ship_id, cert_name, cert_type, cert_abbreviation,
	issue_date, valid_date, last_endorse, status`

// SurveyRepository reads ship and certificate snapshots from the document
// store and overwrites the computed fields.  Writes are plain UPDATEs of
// derived columns, so repeating one is harmless.
type SurveyRepository struct {
	baseRepo
}

// NewSurveyRepository constructs a SurveyRepository.
func NewSurveyRepository(conn *postgres.Connection, log logging.Logger) *SurveyRepository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SurveyRepository{baseRepo: baseRepo{conn: conn, log: log}}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func (r *SurveyRepository) GetShip(ctx context.Context, id string) (*domain.ShipRecord, error) {
	row := r.executor().QueryRowContext(ctx, `SELECT `+shipColumns+` FROM ships WHERE id = $1`, id)
	ship, err := scanShip(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeShipNotFound, "ship not found").WithDetail("id=" + id)
		}
		return nil, wrapRead(err, "failed to load ship")
	}
	return ship, nil
}

func (r *SurveyRepository) ListShipsByCompany(ctx context.Context, companyID string) ([]domain.ShipRecord, error) {
	rows, err := r.executor().QueryContext(ctx,
		`SELECT `+shipColumns+` FROM ships WHERE company_id = $1 ORDER BY name, id`, companyID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list ships")
	}
	defer rows.Close()

	ships := []domain.ShipRecord{}
	for rows.Next() {
		s, err := scanShip(rows)
		if err != nil {
			if s == nil {
				return nil, wrapRead(err, "failed to scan ship")
			}
			// A corrupt interval table loses only that ship's overrides.
			r.log.Warn("ignoring malformed test_report_intervals",
				logging.String("ship_id", s.ID),
				logging.Err(err),
			)
		}
		ships = append(ships, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate ships")
	}
	return ships, nil
}

func (r *SurveyRepository) GetCertificate(ctx context.Context, id string) (*domain.CertificateRecord, error) {
	row := r.executor().QueryRowContext(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id)
	c, err := scanCertificate(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.New(errors.ErrCodeCertificateNotFound, "certificate not found").WithDetail("id=" + id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to load certificate")
	}
	return c, nil
}

func (r *SurveyRepository) ListCertificatesByShips(ctx context.Context, shipIDs []string) ([]domain.CertificateRecord, error) {
	certs := []domain.CertificateRecord{}
	if len(shipIDs) == 0 {
		return certs, nil
	}
	args := make([]interface{}, len(shipIDs))
	for i, id := range shipIDs {
		args[i] = id
	}
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE ship_id IN (` +
		placeholders(1, len(shipIDs)) + `) ORDER BY ship_id, id`

	rows, err := r.executor().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list certificates")
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan certificate")
		}
		certs = append(certs, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate certificates")
	}
	return certs, nil
}

// ---------------------------------------------------------------------------
// Computed-field writes
// ---------------------------------------------------------------------------

const updateNextSurvey = `
	UPDATE certificates SET
		next_survey_date = $2,
		next_survey_type = $3,
		next_survey_annotation = $4,
		next_survey_reasoning = $5,
		next_survey_computed_at = NOW()
	WHERE id = $1`

const updateShipComputed = `
	UPDATE ships SET
		anniversary_day = $2,
		anniversary_month = $3,
		anniversary_source_certificate_id = $4,
		anniversary_auto_calculated = $5,
		special_survey_from = $6,
		special_survey_to = $7,
		special_survey_cycle_type = $8,
		special_survey_intermediate_required = $9,
		special_survey_source_certificate_id = $10,
		next_docking = CASE WHEN $12 THEN $11 ELSE next_docking END,
		computed_at = NOW()
	WHERE id = $1`

func nextSurveyArgs(certID string, res domain.NextSurveyResult) []interface{} {
	return []interface{}{
		certID,
		nullString(domain.FormatDate(res.NextSurvey)),
		nullString(res.NextSurveyType),
		string(res.Annotation),
		res.Reasoning,
	}
}

// SaveNextSurvey overwrites a certificate's next-survey fields.
func (r *SurveyRepository) SaveNextSurvey(ctx context.Context, certID string, res domain.NextSurveyResult) error {
	out, err := r.executor().ExecContext(ctx, updateNextSurvey, nextSurveyArgs(certID, res)...)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save next survey")
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return errors.New(errors.ErrCodeCertificateNotFound, "certificate not found").WithDetail("id=" + certID)
	}
	return nil
}

// SaveShipComputation writes the ship-level fields and every certificate's
// next survey in one transaction.  A manual anniversary arrives unchanged in
// comp and is written back as is.
func (r *SurveyRepository) SaveShipComputation(ctx context.Context, comp domain.ShipComputation) error {
	tx, err := r.conn.DB().BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	out, err := tx.ExecContext(ctx, updateShipComputed, shipComputedArgs(comp)...)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save ship computation")
	}
	if n, err := out.RowsAffected(); err == nil && n == 0 {
		return errors.New(errors.ErrCodeShipNotFound, "ship not found").WithDetail("id=" + comp.ShipID)
	}

	for _, c := range comp.Certificates {
		if _, err := tx.ExecContext(ctx, updateNextSurvey, nextSurveyArgs(c.CertificateID, c.Result)...); err != nil {
			return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to save next survey").
				WithDetail("certificate_id=" + c.CertificateID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to commit ship computation")
	}
	r.log.Debug("ship computation saved",
		logging.String("ship_id", comp.ShipID),
		logging.Int("certificates", len(comp.Certificates)),
	)
	return nil
}

// shipComputedArgs maps a computation onto updateShipComputed.  A nil
// anniversary or cycle clears the stored columns.  next_docking keeps its
// stored value when the docking dates could not be parsed.
func shipComputedArgs(comp domain.ShipComputation) []interface{} {
	var (
		day, month   sql.NullInt32
		annSource    sql.NullString
		auto         bool
		from, to     sql.NullTime
		cycleType    sql.NullString
		intermediate bool
		cycleSource  sql.NullString
	)
	if a := comp.Anniversary; a != nil {
		day = sql.NullInt32{Int32: int32(a.Day), Valid: true}
		month = sql.NullInt32{Int32: int32(a.Month), Valid: true}
		annSource = nullString(a.SourceCertificateID)
		auto = a.AutoCalculated && !comp.AnniversaryManual
	}
	if c := comp.SpecialSurveyCycle; c != nil {
		from = sql.NullTime{Time: c.From, Valid: true}
		to = sql.NullTime{Time: c.To, Valid: true}
		cycleType = nullString(c.CycleType)
		intermediate = c.IntermediateRequired
		cycleSource = nullString(c.SourceCertificateID)
	}
	return []interface{}{
		comp.ShipID,
		day, month, annSource, auto,
		from, to, cycleType, intermediate, cycleSource,
		nullString(domain.FormatDate(comp.Docking.NextDocking)),
		!comp.DockingSkipped,
	}
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

// wrapRead keeps the code of an AppError raised while mapping a row.
func wrapRead(err error, msg string) error {
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		return errors.Wrap(err, errors.CodeUnknown, msg)
	}
	return errors.Wrap(err, errors.ErrCodeDatabaseError, msg)
}

// scanShip maps one ships row.  A malformed test_report_intervals value
// still yields the ship, with nil intervals, alongside an SRV_006 error.
func scanShip(row scanner) (*domain.ShipRecord, error) {
	var (
		s                               domain.ShipRecord
		day, month                      sql.NullInt32
		annSource                       sql.NullString
		manual, auto                    sql.NullBool
		from, to                        sql.NullTime
		cycleType, cycleSource          sql.NullString
		intermediate                    sql.NullBool
		lastDocking, lastDocking2, next sql.NullString
		intervals                       []byte
	)
	if err := row.Scan(
		&s.ID, &s.CompanyID, &s.Name,
		&day, &month, &annSource, &manual, &auto,
		&from, &to, &cycleType, &intermediate, &cycleSource,
		&lastDocking, &lastDocking2, &next, &intervals,
	); err != nil {
		return nil, err
	}

	if day.Valid && month.Valid {
		s.Anniversary = &domain.AnniversaryDate{
			Day:                 int(day.Int32),
			Month:               int(month.Int32),
			SourceCertificateID: annSource.String,
			ManualOverride:      manual.Bool,
			AutoCalculated:      auto.Bool,
		}
	}
	if from.Valid && to.Valid {
		s.SpecialSurveyCycle = &domain.SpecialSurveyCycle{
			From:                 domain.Civil(from.Time),
			To:                   domain.Civil(to.Time),
			CycleType:            cycleType.String,
			IntermediateRequired: intermediate.Bool,
			SourceCertificateID:  cycleSource.String,
		}
	}
	s.LastDocking, s.LastDocking2, s.NextDocking = lastDocking.String, lastDocking2.String, next.String

	if len(intervals) > 0 {
		if err := json.Unmarshal(intervals, &s.TestReportIntervals); err != nil {
			s.TestReportIntervals = nil
			return &s, errors.Wrap(err, errors.ErrCodeIntervalTableInvalid, "malformed test_report_intervals").
				WithDetail("ship_id=" + s.ID)
		}
	}
	return &s, nil
}

func scanCertificate(row scanner) (*domain.CertificateRecord, error) {
	var (
		c                         domain.CertificateRecord
		certType                  string
		abbr, issue, valid, endor sql.NullString
		status                    sql.NullString
	)
	if err := row.Scan(&c.ID, &c.ShipID, &c.CertName, &certType, &abbr, &issue, &valid, &endor, &status); err != nil {
		return nil, err
	}
	c.CertType = domain.ParseCertType(certType)
	c.CertAbbreviation = abbr.String
	c.IssueDate, c.ValidDate, c.LastEndorse = issue.String, valid.String, endor.String
	c.Status = status.String
	return &c, nil
}

//Personal.AI order the ending
