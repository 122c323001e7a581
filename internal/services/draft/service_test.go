package draft

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/openexpo/jurypanel/internal/dependencies/mocks"
	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage/memory"
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
	s.service = New(s.storage, s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSaveAndLoad() {
	payload := json.RawMessage(`{"scores":[{"group":"g1","total":40}]}`)
	s.Require().NoError(s.service.Save(s.ctx, "juror-1", payload))

	draft, err := s.service.Load(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.JSONEq(string(payload), string(draft.Payload))
	s.Equal(s.clock.Now(), draft.UpdatedAt)
}

func (s *ServiceSuite) TestSaveOverwrites() {
	s.Require().NoError(s.service.Save(s.ctx, "juror-1", json.RawMessage(`{"v":1}`)))
	s.clock.Advance(5 * time.Minute)
	s.Require().NoError(s.service.Save(s.ctx, "juror-1", json.RawMessage(`{"v":2}`)))

	draft, err := s.service.Load(s.ctx, "juror-1")
	s.Require().NoError(err)
	s.JSONEq(`{"v":2}`, string(draft.Payload))
	s.Equal(s.clock.Now(), draft.UpdatedAt)
}

func (s *ServiceSuite) TestSaveRejectsInvalidJSON() {
	err := s.service.Save(s.ctx, "juror-1", json.RawMessage(`{"broken":`))
	s.ErrorIs(err, model.ErrCorruptDraft)
}

func (s *ServiceSuite) TestLoadFailsWhenMissing() {
	_, err := s.service.Load(s.ctx, "juror-1")
	s.ErrorIs(err, model.ErrDraftNotFound)
}

func (s *ServiceSuite) TestLoadFailsOnCorruptStoredPayload() {
	// A payload corrupted after it was written, e.g. by a partial store write
	s.Require().NoError(s.storage.SaveDraft(s.ctx, &model.Draft{
		JurorID: "juror-1",
		Payload: json.RawMessage(`{"trunca`),
	}))

	_, err := s.service.Load(s.ctx, "juror-1")
	s.ErrorIs(err, model.ErrCorruptDraft)
}

func (s *ServiceSuite) TestDeleteRemovesDraft() {
	s.Require().NoError(s.service.Save(s.ctx, "juror-1", json.RawMessage(`{}`)))
	s.Require().NoError(s.service.Delete(s.ctx, "juror-1"))

	_, err := s.service.Load(s.ctx, "juror-1")
	s.ErrorIs(err, model.ErrDraftNotFound)
}

func (s *ServiceSuite) TestDeleteNoopWhenMissing() {
	s.NoError(s.service.Delete(s.ctx, "juror-1"))
}

func (s *ServiceSuite) TestDraftsAreIsolatedPerJuror() {
	s.Require().NoError(s.service.Save(s.ctx, "juror-1", json.RawMessage(`{"who":"one"}`)))
	s.Require().NoError(s.service.Save(s.ctx, "juror-2", json.RawMessage(`{"who":"two"}`)))

	s.Require().NoError(s.service.Delete(s.ctx, "juror-1"))

	draft, err := s.service.Load(s.ctx, "juror-2")
	s.Require().NoError(err)
	s.JSONEq(`{"who":"two"}`, string(draft.Payload))
}
