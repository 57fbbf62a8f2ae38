package commands

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xion/pkg/xiontypes"
)

func noop(_ []string) xiontypes.Command {
	return xiontypes.CommandFunc(func(_ xiontypes.Session) (xiontypes.Result, error) {
		return xiontypes.Continue, nil
	})
}

func spec(name, help string) xiontypes.CommandSpec {
	return xiontypes.CommandSpec{Name: name, Help: help, New: noop}
}

func helps(specs []xiontypes.CommandSpec) map[string]string {
	out := make(map[string]string, len(specs))
	for _, s := range specs {
		out[s.Token()] = s.HelpText()
	}
	return out
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(spec("Show", "Show things"))

	got, ok := r.Get("show")
	require.True(t, ok)
	assert.Equal(t, "Show", got.Name)

	_, ok = r.Get("Show")
	assert.False(t, ok, "lookup is by lowercase token only")
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.Register(spec("Show", "first"))
	r.Register(spec("Set", "set"))
	r.Register(spec("SHOW", "second"))

	got, ok := r.Get("show")
	require.True(t, ok)
	assert.Equal(t, "second", got.Help)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"show", "set"}, r.Tokens())
}

func TestRegistry_AllOrder(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Show", "Clear", "Set", "Run", "Exit", "Use"} {
		r.Register(spec(name, ""))
	}

	want := []string{"show", "clear", "set", "run", "exit", "use"}
	var got []string
	for _, s := range r.All() {
		got = append(got, s.Token())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Suggest(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"Show", "Clear", "Set", "Use", "Exit"} {
		r.Register(spec(name, ""))
	}

	tests := []struct {
		input    string
		expected string
		found    bool
	}{
		{"shwo", "show", true},
		{"sett", "set", true},
		{"exti", "exit", true},
		{"clr", "clear", true},
		{"bogus", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := r.Suggest(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(spec("Show", "x"))
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Get("show")
			_ = r.All()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
}

func TestModuleRegistry(t *testing.T) {
	m := NewModuleRegistry()
	main := &xiontypes.Module{Name: "Main"}
	net := &xiontypes.Module{Name: "Network"}

	m.Register("main", main)
	m.Register("net", net)
	m.Register("main", main)

	got, ok := m.Get("net")
	require.True(t, ok)
	assert.Same(t, net, got)
	assert.Equal(t, []string{"main", "net"}, m.Names())

	_, ok = m.Get("Network")
	assert.False(t, ok)
}

func TestNamespace_Resolve(t *testing.T) {
	n := NewNamespace()
	main := &xiontypes.Module{Name: "Main", Commands: []xiontypes.CommandSpec{spec("Show", "")}}
	n.Declare(main)
	n.Declare(&xiontypes.Module{Name: "Network"})

	got, err := n.Resolve("main")
	require.NoError(t, err)
	assert.Same(t, main, got)

	got, err = n.Resolve("MAIN")
	require.NoError(t, err)
	assert.Same(t, main, got)

	// "net" capitalizes to "Net", not "Network".
	_, err = n.Resolve("net")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xiontypes.ErrModuleNotLoaded))

	var mnl *xiontypes.ModuleNotLoadedError
	require.True(t, errors.As(err, &mnl))
	assert.Equal(t, "net", mnl.Name)
}

func TestNamespace_NilDeclarationIsAbsent(t *testing.T) {
	n := NewNamespace()
	n.modules["Ghost"] = nil

	_, ok := n.Lookup("Ghost")
	assert.False(t, ok)

	_, err := n.Resolve("ghost")
	assert.True(t, errors.Is(err, xiontypes.ErrModuleNotLoaded))
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":        "",
		"main":    "Main",
		"MAIN":    "Main",
		"nEtWork": "Network",
		"é":       "É",
	}
	for in, want := range tests {
		assert.Equal(t, want, Capitalize(in), in)
	}
}

func TestDeclare_GlobalNamespace(t *testing.T) {
	orig := GlobalNamespace
	GlobalNamespace = NewNamespace()
	t.Cleanup(func() { GlobalNamespace = orig })

	mod := &xiontypes.Module{Name: "Scratch", Commands: []xiontypes.CommandSpec{spec("Ping", "pong")}}
	Declare(mod)

	got, err := GlobalNamespace.Resolve("scratch")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ping": "pong"}, helps(got.Commands))
}
