package session

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xion/internal/commands"
	"xion/pkg/xiontypes"
)

// recorder returns a factory whose commands append their label and args to log.
func recorder(label string, log *[]string) xiontypes.Factory {
	return func(args []string) xiontypes.Command {
		return xiontypes.CommandFunc(func(_ xiontypes.Session) (xiontypes.Result, error) {
			*log = append(*log, label)
			*log = append(*log, args...)
			return xiontypes.Continue, nil
		})
	}
}

func setOption(args []string) xiontypes.Command {
	return xiontypes.CommandFunc(func(s xiontypes.Session) (xiontypes.Result, error) {
		s.Options().Set(xiontypes.Arg(args, 0), xiontypes.Arg(args, 1))
		return xiontypes.Continue, nil
	})
}

func newTestSession(t *testing.T, modules ...*xiontypes.Module) (*Session, *bytes.Buffer) {
	t.Helper()
	ns := commands.NewNamespace()
	for _, m := range modules {
		ns.Declare(m)
	}
	var out bytes.Buffer
	return New(WithOutput(&out), WithNamespace(ns)), &out
}

func listing(s *Session) map[string]string {
	out := make(map[string]string)
	for _, spec := range s.Commands().All() {
		out[spec.Token()] = spec.HelpText()
	}
	return out
}

func TestNew_InitialState(t *testing.T) {
	s, _ := newTestSession(t)

	assert.NotEmpty(t, s.ID())
	assert.Nil(t, s.ActiveModule())
	assert.Equal(t, "", s.ActiveModuleName())
	assert.Equal(t, " >> ", s.Prompt())
	assert.Equal(t, 0, s.Options().Len())
	assert.Equal(t, 0, s.Commands().Len())
}

func TestNew_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, New().ID(), New().ID())
}

func TestRegisterModule_ResolvesByName(t *testing.T) {
	var log []string
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{
		{Name: "Show", New: recorder("show", &log)},
	}}
	s, _ := newTestSession(t, main)

	require.NoError(t, s.RegisterModule("main", nil))

	got, ok := s.Modules().Get("main")
	require.True(t, ok)
	assert.Same(t, main, got)
	_, ok = s.Commands().Get("show")
	assert.True(t, ok)
}

func TestRegisterModule_UnknownName(t *testing.T) {
	s, _ := newTestSession(t)

	err := s.RegisterModule("ghost", nil)

	assert.True(t, errors.Is(err, xiontypes.ErrModuleNotLoaded))
	assert.Empty(t, s.Modules().Names())
}

func TestRegisterModule_ExplicitReference(t *testing.T) {
	network := &xiontypes.Module{Name: "Network"}
	s, _ := newTestSession(t)

	require.NoError(t, s.RegisterModule("net", network))

	got, ok := s.Modules().Get("net")
	require.True(t, ok)
	assert.Same(t, network, got)
}

func TestRegisterModule_CollisionLastWriteWins(t *testing.T) {
	var log []string
	alpha := &xiontypes.Module{Name: "Alpha", Commands: []xiontypes.CommandSpec{
		{Name: "Scan", Help: "alpha scan", New: recorder("alpha", &log)},
	}}
	beta := &xiontypes.Module{Name: "Beta", Commands: []xiontypes.CommandSpec{
		{Name: "SCAN", Help: "beta scan", New: recorder("beta", &log)},
	}}
	s, _ := newTestSession(t, alpha, beta)

	require.NoError(t, s.RegisterModule("alpha", nil))
	require.NoError(t, s.RegisterModule("beta", nil))

	_, err := s.RunCommand("scan", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, log)
	assert.Equal(t, map[string]string{"scan": "beta scan"}, listing(s))
}

func TestRegisterModule_Idempotent(t *testing.T) {
	var log []string
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{
		{Name: "Show", Help: "show", New: recorder("show", &log)},
		{Name: "Set", Help: "set", New: setOption},
	}}
	s, _ := newTestSession(t, main)

	require.NoError(t, s.RegisterModule("main", nil))
	first := listing(s)
	firstTokens := s.Commands().Tokens()

	require.NoError(t, s.RegisterModule("main", nil))

	if diff := cmp.Diff(first, listing(s)); diff != "" {
		t.Errorf("registry changed on re-registration (-first +second):\n%s", diff)
	}
	assert.Equal(t, firstTokens, s.Commands().Tokens())
	assert.Equal(t, []string{"main"}, s.Modules().Names())
}

func TestCommandsFromInactiveModulesStayCallable(t *testing.T) {
	var log []string
	main := &xiontypes.Module{Name: "Main"}
	tools := &xiontypes.Module{Name: "Tools", Commands: []xiontypes.CommandSpec{
		{Name: "Ping", New: recorder("ping", &log)},
	}}
	s, _ := newTestSession(t, main, tools)
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.RegisterModule("tools", nil))
	require.NoError(t, s.ChangeModule("main"))

	_, err := s.RunCommand("ping", []string{"host"})

	require.NoError(t, err)
	assert.Equal(t, []string{"ping", "host"}, log)
	assert.Equal(t, "main", s.ActiveModuleName())
}

func TestChangeModule_ClearsOptions(t *testing.T) {
	s, _ := newTestSession(t, &xiontypes.Module{Name: "Main"}, &xiontypes.Module{Name: "Net"})
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.RegisterModule("net", nil))
	require.NoError(t, s.ChangeModule("main"))
	s.Options().Set("a", "1")

	require.NoError(t, s.ChangeModule("net"))

	assert.Equal(t, 0, s.Options().Len())
	assert.Equal(t, "net", s.ActiveModuleName())
	assert.Equal(t, "net >> ", s.Prompt())
}

func TestChangeModule_SameModuleStillClears(t *testing.T) {
	s, _ := newTestSession(t, &xiontypes.Module{Name: "Main"})
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.ChangeModule("main"))
	s.Options().Set("a", "1")

	require.NoError(t, s.ChangeModule("main"))

	assert.Equal(t, 0, s.Options().Len())
}

func TestChangeModule_UnknownLeavesStateUntouched(t *testing.T) {
	main := &xiontypes.Module{Name: "Main"}
	s, _ := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.ChangeModule("main"))
	s.Options().Set("a", "1")

	err := s.ChangeModule("ghost")

	require.Error(t, err)
	var mnl *xiontypes.ModuleNotLoadedError
	require.True(t, errors.As(err, &mnl))
	assert.Equal(t, "ghost", mnl.Name)
	assert.Same(t, main, s.ActiveModule())
	assert.Equal(t, "main >> ", s.Prompt())
	value, ok := s.Options().Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
}

func TestChangeModule_DeclaredButUnregistered(t *testing.T) {
	s, _ := newTestSession(t, &xiontypes.Module{Name: "Main"})

	err := s.ChangeModule("main")

	assert.True(t, errors.Is(err, xiontypes.ErrModuleNotLoaded))
	assert.Nil(t, s.ActiveModule())
}

func TestRunCommand_NotFoundLeavesStateUntouched(t *testing.T) {
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{{Name: "Set", New: setOption}}}
	s, out := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.ChangeModule("main"))
	s.Options().Set("a", "1")
	before := listing(s)

	for _, token := range []string{"bogus", "", "SET"} {
		result, err := s.RunCommand(token, []string{"x", "y"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, xiontypes.ErrCommandNotFound))
		assert.Equal(t, "Command `"+token+"` not found", err.Error())
		assert.Equal(t, xiontypes.Continue, result)
	}

	assert.Equal(t, before, listing(s))
	assert.Equal(t, "main", s.ActiveModuleName())
	assert.Equal(t, 1, s.Options().Len())
	assert.Empty(t, out.String())
}

func TestRunCommand_PassesArgsAndSession(t *testing.T) {
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{{Name: "Set", New: setOption}}}
	s, _ := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))

	result, err := s.RunCommand("set", []string{"k", "v", "extra"})

	require.NoError(t, err)
	assert.Equal(t, xiontypes.Continue, result)
	value, _ := s.Options().Get("k")
	assert.Equal(t, "v", value)
}

func TestRunCommand_PropagatesCommandError(t *testing.T) {
	boom := errors.New("boom")
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{{
		Name: "Fail",
		New: func(_ []string) xiontypes.Command {
			return xiontypes.CommandFunc(func(_ xiontypes.Session) (xiontypes.Result, error) {
				return xiontypes.Continue, boom
			})
		},
	}}}
	s, _ := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))

	_, err := s.RunCommand("fail", nil)
	assert.ErrorIs(t, err, boom)
}

func TestListCommands(t *testing.T) {
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{
		{Name: "Show", Help: "Show things", New: setOption},
		{Name: "Run", New: setOption},
	}}
	s, out := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))

	s.ListCommands()

	assert.Equal(t, "show\t Show things\nrun\t "+xiontypes.DefaultHelp+"\n", out.String())
}

func TestListModules(t *testing.T) {
	s, out := newTestSession(t, &xiontypes.Module{Name: "Main", Help: "Core"})
	require.NoError(t, s.RegisterModule("main", nil))
	require.NoError(t, s.RegisterModule("net", &xiontypes.Module{Name: "Network"}))

	s.ListModules()

	assert.Equal(t, "main\t Core\nnet\t "+xiontypes.DefaultHelp+"\n", out.String())
}

func TestSuggest(t *testing.T) {
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{{Name: "Show", New: setOption}}}
	s, _ := newTestSession(t, main)
	require.NoError(t, s.RegisterModule("main", nil))

	got, ok := s.Suggest("shw")
	assert.True(t, ok)
	assert.Equal(t, "show", got)
}

func TestWithID(t *testing.T) {
	assert.Equal(t, "fixed", New(WithID("fixed")).ID())
	assert.NotEmpty(t, New(WithID("")).ID())
}
