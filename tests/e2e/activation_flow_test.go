package e2e

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"shareware/internal/config"
	"shareware/internal/license"
	"shareware/internal/report"
	"shareware/internal/shared/testutil"
)

// ActivationFlowTestSuite exercises the full declare-validate-record-report
// path the way a real process would: a library declares itself during init,
// the user sets a key, the library is declared again, and the exit hook
// renders the report.
type ActivationFlowTestSuite struct {
	suite.Suite
	engine   *license.Engine
	registry *license.Registry
	env      map[string]string
	declarer *license.Declarer
	now      time.Time
}

func (suite *ActivationFlowTestSuite) SetupTest() {
	suite.engine = testutil.NewEngine(suite.T(), license.WithCache(64))
	suite.registry = license.NewRegistry()
	suite.env = map[string]string{}
	suite.now = testutil.TimeIn(2025, time.February)
	suite.declarer = license.NewDeclarer(suite.engine, suite.registry, "",
		license.WithEnvLookup(testutil.Env(suite.env)),
		license.WithClock(testutil.Clock(suite.now)),
	)
}

func (suite *ActivationFlowTestSuite) TestDemoScenario() {
	ctx := context.Background()

	// First declaration with no key set.
	state, err := suite.declarer.Declare(ctx, "Demo")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), license.StateUnactivated, state)
	assert.Contains(suite.T(), suite.registry.UnactivatedNames(), "Demo")

	// The user opts in with the sentinel key and the library reloads.
	suite.env["SHAREWARE_KEY_DEMO"] = config.SentinelKey
	state, err = suite.declarer.Declare(ctx, "Demo")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), license.StateActivated, state)

	assert.Contains(suite.T(), suite.registry.ActivatedNames(), "Demo")
	assert.NotContains(suite.T(), suite.registry.UnactivatedNames(), "Demo")
}

func (suite *ActivationFlowTestSuite) TestIssuedKeyFlow() {
	ctx := context.Background()

	key := testutil.MustIssueKey(suite.T(), suite.engine, "PaidLib", suite.now)
	suite.env["SHAREWARE_KEY_PAIDLIB"] = key

	state, err := suite.declarer.Declare(ctx, "PaidLib")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), license.StateActivated, state)

	// A garbled copy of the same key is invalid, and the bad declaration
	// overrides the good one: last write wins.
	suite.env["SHAREWARE_KEY_PAIDLIB"] = "x" + key
	state, err = suite.declarer.Declare(ctx, "PaidLib")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), license.StateInvalid, state)
	assert.Contains(suite.T(), suite.registry.InvalidNames(), "PaidLib")
}

func (suite *ActivationFlowTestSuite) TestExitReportOverSnapshot() {
	ctx := context.Background()

	suite.env["SHAREWARE_KEY_FUNDED"] = config.SentinelKey
	for _, name := range []string{"Funded", "Freeloader"} {
		_, err := suite.declarer.Declare(ctx, name)
		require.NoError(suite.T(), err)
	}

	var b strings.Builder
	require.NoError(suite.T(), report.Render(&b, suite.registry.Snapshot()))
	out := b.String()

	assert.Contains(suite.T(), out, "Funded")
	assert.Contains(suite.T(), out, "Freeloader")
	assert.Contains(suite.T(), out, "namespaces: 2, events: 2")
}

func (suite *ActivationFlowTestSuite) TestResetIsolatesRuns() {
	ctx := context.Background()

	_, err := suite.declarer.Declare(ctx, "Demo")
	require.NoError(suite.T(), err)

	suite.registry.Reset()
	assert.Empty(suite.T(), suite.registry.Snapshot())
	assert.Empty(suite.T(), suite.registry.AllEvents())
}

func TestActivationFlowTestSuite(t *testing.T) {
	suite.Run(t, new(ActivationFlowTestSuite))
}
