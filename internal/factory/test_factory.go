package factory

import (
	"time"

	"github.com/openexpo/jurypanel/internal/dependencies/mocks"
	"github.com/openexpo/jurypanel/internal/services/pin"
	"github.com/openexpo/jurypanel/internal/services/resetwindow"
	"github.com/openexpo/jurypanel/internal/storage/memory"
	"github.com/openexpo/jurypanel/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom,
		pin.DefaultConfig(), resetwindow.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
