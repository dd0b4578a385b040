package simplify

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/boolnorm/internal/normalform"
	tt "github.com/gnolang/boolnorm/internal/types"
)

type mockSimplifyEngine struct {
	mock.Mock
}

func (m *mockSimplifyEngine) Run(input string, form normalform.Stage, variables []string) (*tt.Report, error) {
	args := m.Called(input, form, variables)
	report, _ := args.Get(0).(*tt.Report)
	return report, args.Error(1)
}

func (m *mockSimplifyEngine) Apply(law, input string) (*tt.Report, error) {
	args := m.Called(law, input)
	report, _ := args.Get(0).(*tt.Report)
	return report, args.Error(1)
}

func (m *mockSimplifyEngine) IgnoreLaw(name string) {
	m.Called(name)
}

func TestProcessExpressions(t *testing.T) {
	t.Parallel()

	engine := new(mockSimplifyEngine)
	inputs := []string{"!(A*B)", "A+A", "A*(B+C)"}
	for _, input := range inputs {
		engine.On("Run", input, normalform.StageDNF, []string(nil)).
			Return(&tt.Report{Input: input, Form: "dnf", Result: "r(" + input + ")"}, nil)
	}

	reports, err := ProcessExpressions(context.Background(), zap.NewNop(), engine, inputs,
		Normalize(normalform.StageDNF, nil), Options{Workers: 2})
	require.NoError(t, err)
	require.Len(t, reports, len(inputs))
	for i, input := range inputs {
		assert.Equal(t, input, reports[i].Input)
		assert.Equal(t, "r("+input+")", reports[i].Result)
	}
	engine.AssertExpectations(t)
}

func TestProcessExpressionsWithErrors(t *testing.T) {
	t.Parallel()

	failure := errors.New("boom")
	engine := new(mockSimplifyEngine)
	engine.On("Apply", "de-morgan", "!(A*B)").Return(&tt.Report{Input: "!(A*B)", Result: "!A+!B"}, nil)
	engine.On("Apply", "de-morgan", "A+").Return(nil, failure)

	reports, err := ProcessExpressions(context.Background(), nil, engine, []string{"!(A*B)", "A+"},
		ApplyLaw("de-morgan"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "expression 2")

	require.Len(t, reports, 2)
	assert.Equal(t, "!A+!B", reports[0].Result)
	assert.Equal(t, "A+", reports[1].Input)
	assert.Equal(t, "boom", reports[1].Error)
	engine.AssertExpectations(t)
}

func TestProcessExpressionsTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	slow := func(SimplifyEngine, string) (*tt.Report, error) {
		<-release
		return &tt.Report{}, nil
	}

	reports, err := ProcessExpressions(context.Background(), nil, new(mockSimplifyEngine), []string{"A"},
		slow, Options{Timeout: 10 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, reports[0].Error, ErrTimeout.Error())
}

func TestProcessExpressionsCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	calls := 0
	count := func(SimplifyEngine, string) (*tt.Report, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return &tt.Report{}, nil
	}

	_, err := ProcessExpressions(ctx, nil, new(mockSimplifyEngine), []string{"A", "B"}, count, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestProcessExpressionsProgress(t *testing.T) {
	t.Parallel()

	engine := new(mockSimplifyEngine)
	engine.On("Run", "A", normalform.StageNNF, []string(nil)).Return(&tt.Report{Input: "A"}, nil)

	var buf bytes.Buffer
	_, err := ProcessExpressions(context.Background(), nil, engine, []string{"A"},
		Normalize(normalform.StageNNF, nil), Options{Progress: &buf})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "simplifying")
}

func TestProcessWithRealEngine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	config := DefaultConfig()
	config.Cache = filepath.Join(dir, "cache")
	config.Verify = true
	require.NoError(t, WriteConfig(path, config))

	engine, loaded, err := New(path)
	require.NoError(t, err)
	assert.True(t, loaded.Verify)

	reports, err := ProcessExpressions(context.Background(), nil, engine,
		[]string{"A+A*B", "!(A*B)", "A*(B+C)"}, Normalize(normalform.StageDNF, nil), Options{})
	require.NoError(t, err)
	assert.Equal(t, "A", reports[0].Result)
	for _, r := range reports {
		assert.Equal(t, "Equivalent", r.Verified)
	}

	again, err := ProcessExpressions(context.Background(), nil, engine,
		[]string{"A+A*B"}, Normalize(normalform.StageDNF, nil), Options{})
	require.NoError(t, err)
	assert.True(t, again[0].Cached)
}

func TestReadExpressions(t *testing.T) {
	t.Parallel()

	input := "# header\nA+B\n\n  !(A*B)  \n# trailing\n"
	got, err := ReadExpressions(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"A+B", "!(A*B)"}, got)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("Defaults", func(t *testing.T) {
		t.Parallel()
		empty := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))

		config, err := LoadConfig(empty)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), config)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "custom.yaml")
		content := `name: custom
form: nnf
hardLimit: 7
render:
  latex: true
laws:
  distributive: false
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "custom", config.Name)
		assert.Equal(t, 7, config.HardLimit)
		assert.Equal(t, normalform.DefaultExpandedHardLimit, config.ExpandedHardLimit)
		assert.True(t, config.Render.LaTeX)
		assert.Equal(t, map[string]bool{"distributive": false}, config.Laws)

		stage, err := config.Stage()
		require.NoError(t, err)
		assert.Equal(t, normalform.StageNNF, stage)
	})

	t.Run("UnknownForm", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("form: cnf\n"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("UnknownField", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(dir, "typo.yaml")
		require.NoError(t, os.WriteFile(path, []byte("hardLimt: 3\n"), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("Missing", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	config := DefaultConfig()
	config.Form = "expanded-dnf"
	config.Variables = []string{"A", "B"}
	require.NoError(t, WriteConfig(path, config))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
