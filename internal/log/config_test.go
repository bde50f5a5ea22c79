package log

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type ModuleLevelTestSuite struct {
	suite.Suite
	origLookup func(string) (string, bool)
	vars       map[string]string
}

func TestModuleLevelTestSuite(t *testing.T) {
	suite.Run(t, new(ModuleLevelTestSuite))
}

func (s *ModuleLevelTestSuite) SetupTest() {
	s.origLookup = lookupEnv
	s.vars = map[string]string{}
	lookupEnv = func(key string) (string, bool) {
		v, ok := s.vars[key]
		return v, ok && v != ""
	}
}

func (s *ModuleLevelTestSuite) TearDownTest() {
	lookupEnv = s.origLookup
}

func (s *ModuleLevelTestSuite) TestDefaultsToInfo() {
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"FlowSvc"}))
	s.Equal(zapcore.InfoLevel, moduleLevel(nil))
}

func (s *ModuleLevelTestSuite) TestGlobalLevel() {
	s.vars["LOG_LEVEL"] = "warn"
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"FlowSvc"}))
}

func (s *ModuleLevelTestSuite) TestMostSpecificWins() {
	s.vars["LOG_LEVEL"] = "error"
	s.vars["LOG_LEVEL__FLOW_SVC"] = "info"
	s.vars["LOG_LEVEL__FLOW_SVC__REGISTRY"] = "debug"

	s.Equal(zapcore.DebugLevel, moduleLevel([]string{"FlowSvc", "Registry"}))
	s.Equal(zapcore.InfoLevel, moduleLevel([]string{"FlowSvc", "Other"}))
}

func (s *ModuleLevelTestSuite) TestInvalidLevelFallsThrough() {
	s.vars["LOG_LEVEL__CALL_BRIDGE"] = "loud"
	s.vars["LOG_LEVEL"] = "warn"
	s.Equal(zapcore.WarnLevel, moduleLevel([]string{"CallBridge"}))
}

func (s *ModuleLevelTestSuite) TestLevelKeys() {
	s.Equal([]string{
		"LOG_LEVEL__HTTP_SERVER__WEB_SOCKET",
		"LOG_LEVEL__HTTP_SERVER",
		"LOG_LEVEL",
	}, levelKeys([]string{"HTTPServer", "WebSocket"}))
}

func (s *ModuleLevelTestSuite) TestParseLevelCaseInsensitive() {
	lv, ok := parseLevel("DEBUG")
	s.True(ok)
	s.Equal(zapcore.DebugLevel, lv)

	_, ok = parseLevel("trace")
	s.False(ok)
}
