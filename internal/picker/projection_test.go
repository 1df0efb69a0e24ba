package picker

import (
	"testing"

	"github.com/Planeshifter/llm-context-builder/internal/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func rowLabels(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Rel
	}
	return out
}

func TestListChildren_SortsDirectoriesFirstThenName(t *testing.T) {
	fsys := mocks.NewMemFS(root)
	fsys.CreateFile("/ws/b.txt", "b")
	fsys.CreateFile("/ws/A.txt", "a")
	fsys.CreateDir("/ws/zdir")
	fsys.CreateDir("/ws/Bdir")
	s := newTestSession(t, fsys)

	nodes, err := s.ListChildren("")

	require.NoError(t, err)
	assert.Equal(t, []string{"Bdir", "zdir", "A.txt", "b.txt"}, names(nodes))
}

func TestNode_Label(t *testing.T) {
	assert.Equal(t, "a.txt", Node{Name: "a.txt"}.Label())
	assert.Equal(t, "a.txt (10 tokens)", Node{Name: "a.txt", Tokens: 10}.Label())
	assert.Equal(t, "src (3 tokens)", Node{Name: "src", IsDir: true, Tokens: 3}.Label())
}

func TestListChildren_AttachesStateAndTokens(t *testing.T) {
	s := newTestSession(t, scenarioFS())
	_, err := s.Toggle(ctx, "/ws/b", true, nil)
	require.NoError(t, err)

	nodes, err := s.ListChildren(root)

	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, Node{Path: "/ws/b", Rel: "b", Name: "b", IsDir: true, State: Full, Tokens: 1}, nodes[0])
	assert.Equal(t, Node{Path: "/ws/a.txt", Rel: "a.txt", Name: "a.txt", State: Unselected}, nodes[1])
	assert.Equal(t, "b (1 tokens)", nodes[0].Label())
}

func TestListChildren_ExcludedDirectoryIsNotListed(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/node_modules/x.js", "module")
	s := newTestSession(t, fsys)

	nodes, err := s.ListChildren(root)
	require.NoError(t, err)
	assert.NotContains(t, names(nodes), "node_modules")

	inside, err := s.ListChildren("/ws/node_modules")
	require.NoError(t, err)
	assert.Empty(t, inside)
}

func TestListChildren_SearchKeepsDirectoryWithMatchingDescendant(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/bar/foo.txt", "foo")
	fsys.CreateFile("/ws/baz/qux.txt", "qux")
	s := newTestSession(t, fsys)
	s.SetSearchTerms("foo")

	nodes, err := s.ListChildren("")
	require.NoError(t, err)
	assert.Equal(t, []string{"bar"}, names(nodes))

	children, err := s.ListChildren("/ws/bar")
	require.NoError(t, err)
	assert.Equal(t, []string{"foo.txt"}, names(children))
}

func TestListChildren_SearchIgnoresExcludedMatches(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/lib/node_modules/foo.js", "foo")
	s := newTestSession(t, fsys)
	s.SetSearchTerms("foo")

	nodes, err := s.ListChildren("")

	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestListChildren_SearchClosure(t *testing.T) {
	fsys, _, _ := propertyFS()
	s := newTestSession(t, fsys)

	for _, terms := range []string{"h.txt", "j", "d/", "nomatch"} {
		s.SetSearchTerms(terms)
		v := s.snapshotView()
		for _, row := range s.VisibleRows() {
			if !row.IsDir || Matches(row.Rel, v.terms) {
				continue
			}
			assert.True(t, s.hasMatchingDescendant(v, row.Path), "%s listed for %q without a match", row.Rel, terms)
		}
	}
}

func TestListChildren_HiddenEntries(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/.env", "SECRET=1")
	s := newTestSession(t, fsys, func(o *Options) { o.ShowHidden = false })

	nodes, err := s.ListChildren("")

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a.txt"}, names(nodes))
}

func TestListChildren_Errors(t *testing.T) {
	s := newTestSession(t, scenarioFS())

	_, err := s.ListChildren("/ws/a.txt")
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = s.ListChildren("/elsewhere")
	assert.Error(t, err)
}

func TestVisibleRows_HonoursExpandedSet(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/b/d/e.txt", "e")
	s := newTestSession(t, fsys)

	assert.Equal(t, []string{"b", "a.txt"}, rowLabels(s.VisibleRows()))

	assert.True(t, s.ToggleExpanded("/ws/b"))
	rows := s.VisibleRows()
	assert.Equal(t, []string{"b", "b/d", "b/c.txt", "a.txt"}, rowLabels(rows))
	assert.Equal(t, 1, rows[1].Depth)
	assert.True(t, rows[0].Expanded)
	assert.False(t, rows[1].Expanded)

	s.SetExpanded("/ws/b/d", true)
	assert.Equal(t, []string{"b", "b/d", "b/d/e.txt", "b/c.txt", "a.txt"}, rowLabels(s.VisibleRows()))

	assert.False(t, s.ToggleExpanded("/ws/b"))
	assert.Equal(t, []string{"b", "a.txt"}, rowLabels(s.VisibleRows()))
	assert.True(t, s.IsExpanded("/ws/b/d"), "collapsing a parent keeps the child's state")
}

func TestVisibleRows_SearchExpandsWithoutMutating(t *testing.T) {
	fsys := scenarioFS()
	fsys.CreateFile("/ws/bar/deep/foo.txt", "foo")
	s := newTestSession(t, fsys)
	s.SetSearchTerms("foo")

	rows := s.VisibleRows()

	assert.Equal(t, []string{"bar", "bar/deep", "bar/deep/foo.txt"}, rowLabels(rows))
	assert.Equal(t, 2, rows[2].Depth)
	assert.False(t, s.IsExpanded("/ws/bar"))
}

func TestVisibleRows_SymlinkLoop(t *testing.T) {
	fsys := scenarioFS()
	fsys.Link("/ws/b/loop", "/ws/b")
	s := newTestSession(t, fsys)
	s.SetExpanded("/ws/b", true)
	s.SetExpanded("/ws/b/loop", true)

	rows := s.VisibleRows()

	assert.Equal(t, []string{"b", "b/loop", "b/c.txt", "a.txt"}, rowLabels(rows))
}
