package picker

import (
	"testing"

	"github.com/Planeshifter/llm-context-builder/internal/testing/mocks"
	"github.com/stretchr/testify/require"
)

const root = "/ws"

func newTestSession(t *testing.T, fsys *mocks.MemFS, opts ...func(*Options)) *Session {
	t.Helper()
	o := Options{
		Root:       root,
		FS:         fsys,
		Counter:    &mocks.WordCounter{},
		Exclusions: NewExclusions([]string{".git", "node_modules"}, []string{".png"}, nil),
		ShowHidden: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	s, err := NewSession(o)
	require.NoError(t, err)
	return s
}

// scenarioFS is the two-file workspace: /ws/a.txt and /ws/b/c.txt.
func scenarioFS() *mocks.MemFS {
	fsys := mocks.NewMemFS(root)
	fsys.CreateFile("/ws/a.txt", "hello")
	fsys.CreateFile("/ws/b/c.txt", "world")
	return fsys
}

func fileMark(weight int) Mark { return Mark{Weight: weight} }

var (
	fullDir    = Mark{Weight: 1, Dir: true}
	partialDir = Mark{Weight: 0, Dir: true}
)

// requireConsistent checks the cached directory marks against a full
// recomputation and the token total against the file weights.
func requireConsistent(t *testing.T, s *Session) {
	t.Helper()
	sel := s.Selection()
	require.Equal(t, s.Recompute(), sel, "directory marks diverge from recomputation")

	sum := 0
	for _, m := range sel {
		if !m.Dir {
			sum += m.Weight
		}
	}
	require.Equal(t, sum, s.TotalTokens())
}
