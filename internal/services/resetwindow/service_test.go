package resetwindow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openexpo/jurypanel/internal/dependencies/mocks"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage/memory"
	"github.com/openexpo/jurypanel/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) saveAccount(id model.JurorID) {
	s.Require().NoError(s.storage.SaveAccount(s.ctx, &model.JurorAccount{ID: id}))
}

func (s *ServiceSuite) TestIsActiveFalseBeforeOpen() {
	s.saveAccount("juror-1")

	active, err := s.service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.False(active)
}

func (s *ServiceSuite) TestIsActiveFalseForUnknownJuror() {
	active, err := s.service.IsActive(s.ctx, "nobody")
	s.Require().NoError(err)
	s.False(active)
}

func (s *ServiceSuite) TestOpenActivatesWindow() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	active, err := s.service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.True(active)
}

func (s *ServiceSuite) TestWindowStillActiveAtBoundary() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	s.clock.Advance(20 * time.Minute)

	active, err := s.service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.True(active)
}

func (s *ServiceSuite) TestWindowExpires() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	s.clock.Advance(20*time.Minute + time.Second)

	active, err := s.service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.False(active)
}

func (s *ServiceSuite) TestReopenExtendsWindow() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	s.clock.Advance(15 * time.Minute)
	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	s.clock.Advance(15 * time.Minute)

	active, err := s.service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.True(active)
}

func (s *ServiceSuite) TestOpenFailsForUnknownJuror() {
	err := s.service.Open(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestOpenReopensFinalizedRecords() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.storage.SaveRecord(s.ctx, &model.EvaluationRecord{
		JurorID: "juror-1",
		GroupID: "g1",
		Status:  model.StatusAllSubmitted,
		Color:   model.StatusAllSubmitted.Color(),
	}))
	s.Require().NoError(s.storage.SaveRecord(s.ctx, &model.EvaluationRecord{
		JurorID: "juror-1",
		GroupID: "g2",
		Status:  model.StatusGroupSubmitted,
	}))

	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	for _, groupID := range []model.GroupID{"g1", "g2"} {
		record, err := s.storage.GetRecord(s.ctx, "juror-1", groupID)
		s.Require().NoError(err)
		s.Equal(model.StatusInProgress, record.Status)
		s.Equal(model.EditingFlagEditing, record.EditingFlag)
		s.Equal(model.StatusInProgress.Color(), record.Color)
	}
}

func (s *ServiceSuite) TestOpenLeavesOtherJurorsRecordsAlone() {
	s.saveAccount("juror-1")
	s.Require().NoError(s.storage.SaveRecord(s.ctx, &model.EvaluationRecord{
		JurorID: "juror-2",
		GroupID: "g1",
		Status:  model.StatusAllSubmitted,
	}))

	s.Require().NoError(s.service.Open(s.ctx, "juror-1"))

	record, err := s.storage.GetRecord(s.ctx, "juror-2", "g1")
	s.Require().NoError(err)
	s.Equal(model.StatusAllSubmitted, record.Status)
}

func (s *ServiceSuite) TestCustomWindowDuration() {
	service := New(s.storage, s.clock, Config{Window: 5 * time.Minute}, testutil.NopLogger())
	s.saveAccount("juror-1")
	s.Require().NoError(service.Open(s.ctx, "juror-1"))

	s.clock.Advance(6 * time.Minute)

	active, err := service.IsActive(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.False(active)
}
