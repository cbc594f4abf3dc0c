package survey

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/turtacn/ShipCert-Intelligence/internal/domain/survey"
	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

func TestApplyChange_Certificate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cert := interimLoadLine
	f.repo.On("GetCertificate", ctx, "c1").Return(&cert, nil)
	f.repo.On("GetShip", ctx, "s1").Return(&auroraShip, nil)
	f.writer.On("SaveNextSurvey", ctx, "c1", mock.Anything).Return(nil)
	f.publisher.On("PublishSurveyEvent", ctx, mock.Anything).Return(nil)

	err := f.svc.ApplyChange(ctx, DocumentChange{Kind: " Certificate ", CertificateID: "c1"})
	require.NoError(t, err)
	f.writer.AssertCalled(t, "SaveNextSurvey", ctx, "c1", mock.Anything)
	f.writer.AssertNotCalled(t, "SaveShipComputation", mock.Anything, mock.Anything)
}

func TestApplyChange_ShipAndCertificateFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.repo.On("GetShip", ctx, "s1").Return(&auroraShip, nil)
	f.repo.On("ListCertificatesByShips", ctx, []string{"s1"}).Return([]domain.CertificateRecord{interimLoadLine}, nil)
	f.writer.On("SaveShipComputation", ctx, mock.Anything).Return(nil)
	f.publisher.On("PublishSurveyEvent", ctx, mock.Anything).Return(nil)

	require.NoError(t, f.svc.ApplyChange(ctx, DocumentChange{Kind: ChangeShip, ShipID: "s1"}))
	require.NoError(t, f.svc.ApplyChange(ctx, DocumentChange{Kind: ChangeCertificate, ShipID: "s1"}))
	f.writer.AssertNumberOfCalls(t, "SaveShipComputation", 2)
	assert.Equal(t, 2, f.metrics.recalcs[KindShip])
}

func TestApplyChange_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.ApplyChange(ctx, DocumentChange{Kind: "crew"})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	err = f.svc.ApplyChange(ctx, DocumentChange{Kind: ChangeCertificate})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	err = f.svc.ApplyChange(ctx, DocumentChange{Kind: ChangeShip})
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

//Personal.AI order the ending
