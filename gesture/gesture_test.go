package gesture

import (
	"context"
	"testing"

	"github.com/ddvk/rmscribble/host/hosttest"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindNames(t *testing.T) {
	assert.Equal(t, "scribbleToDelete", Delete.SettingKey())
	assert.Equal(t, "scribbleToArrow", Arrow.SettingKey())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	k, err := ParseKind("scribbleToCircle")
	require.NoError(t, err)
	assert.Equal(t, Circle, k)

	k, err = ParseKind("Ellipse")
	require.NoError(t, err)
	assert.Equal(t, Ellipse, k)

	_, err = ParseKind("scribbleToStar")
	assert.Error(t, err)
}

func TestDeleteActionRemovesCoveredStrokes(t *testing.T) {
	s := hosttest.Scribble("s", 1, 0, 0, 100, 100)
	fake := hosttest.NewFake("/notes/a.note",
		hosttest.Line("word", 1, 20, 50, 80, 50),
		hosttest.Line("far", 1, 500, 500, 900, 500),
		s,
	)

	out, err := For(Delete).Apply(context.Background(), Target{Element: s, Host: fake, Margin: 10})
	require.NoError(t, err)
	assert.True(t, out.Recognized)
	assert.Equal(t, 1, out.Deleted)
	assert.Equal(t, []string{"word", "s"}, fake.Deleted)
	assert.Equal(t, []string{"far"}, fake.Remaining(1))
}

func TestDeleteActionLeavesOrdinaryStrokes(t *testing.T) {
	l := hosttest.Line("l", 0, 0, 0, 300, 10)
	fake := hosttest.NewFake("/notes/a.note", l)

	out, err := For(Delete).Apply(context.Background(), Target{Element: l, Host: fake, Margin: 10})
	require.NoError(t, err)
	assert.False(t, out.Recognized)
	assert.Empty(t, fake.Calls)
}

func TestDeleteActionSkipsWithoutPath(t *testing.T) {
	s := hosttest.Scribble("s", 0, 0, 0, 100, 100)
	fake := hosttest.NewFake("", s)

	out, err := For(Delete).Apply(context.Background(), Target{Element: s, Host: fake})
	require.NoError(t, err)
	assert.True(t, out.Skipped)
	assert.Zero(t, fake.CallCount("getElements"))
	assert.Zero(t, fake.CallCount("recycleElement"))

	fake.Path = "/notes/a.note"
	fake.PathErr = errors.New("no document open")
	out, err = For(Delete).Apply(context.Background(), Target{Element: s, Host: fake})
	require.NoError(t, err)
	assert.True(t, out.Skipped)
}

func TestPlaceholdersDoNothing(t *testing.T) {
	s := hosttest.Scribble("s", 0, 0, 0, 100, 100)
	fake := hosttest.NewFake("/notes/a.note", s)

	for _, k := range []Kind{Square, Circle, Triangle, Ellipse, Arrow} {
		action := For(k)
		assert.Equal(t, k, action.Kind())

		_, err := action.Apply(context.Background(), Target{Element: s, Host: fake})
		assert.True(t, errors.Is(err, ErrNotImplemented), k.String())
	}
	assert.Empty(t, fake.Calls)
}
