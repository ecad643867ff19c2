package tadow_test

import (
	"testing"

	"github.com/advdv/tadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexDispatcher(t *testing.T) {
	rt := tadow.NewRouter("")
	require.NoError(t, rt.EndpointFunc("/users/{id}", noop))
	require.NoError(t, rt.EndpointFunc("/users/me", noop))
	require.NoError(t, rt.EndpointFunc("/items/{a}", noop, tadow.WithMethods("GET", "PUT")))
	require.NoError(t, rt.EndpointFunc("/items/{b:[0-9]+}", noop))
	require.NoError(t, rt.EndpointFunc("/files/{dir}/{name}", noop))

	disp := tadow.NewRegexDispatcher()

	t.Run("fewest captures wins", func(t *testing.T) {
		route, params, err := disp.Dispatch(rt.Table(), "GET", "/users/me")
		require.NoError(t, err)
		assert.Equal(t, "/users/me", route.Path())
		assert.Empty(t, params)

		route, params, err = disp.Dispatch(rt.Table(), "GET", "/users/42")
		require.NoError(t, err)
		assert.Equal(t, "/users/{id}", route.Path())
		assert.Equal(t, map[string]string{"id": "42"}, params)
	})

	t.Run("first registered wins a tie", func(t *testing.T) {
		route, params, err := disp.Dispatch(rt.Table(), "GET", "/items/5")
		require.NoError(t, err)
		assert.Equal(t, "/items/{a}", route.Path())
		assert.Equal(t, map[string]string{"a": "5"}, params)
	})

	t.Run("multiple parameters", func(t *testing.T) {
		_, params, err := disp.Dispatch(rt.Table(), "GET", "/files/docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"dir": "docs", "name": "a.txt"}, params)
	})

	t.Run("not found", func(t *testing.T) {
		_, _, err := disp.Dispatch(rt.Table(), "GET", "/unknown")
		require.Error(t, err)
		assert.Equal(t, tadow.CategoryNotFound, tadow.CategoryOf(err))
		assert.Equal(t, tadow.CodeNotFound, tadow.CodeOf(err))

		_, _, err = disp.Dispatch(rt.Table(), "GET", "/users/42/extra")
		assert.Equal(t, tadow.CategoryNotFound, tadow.CategoryOf(err))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, _, err := disp.Dispatch(rt.Table(), "DELETE", "/items/5")
		require.Error(t, err)
		assert.Equal(t, tadow.CategoryMethodNotAllowed, tadow.CategoryOf(err))

		var te *tadow.Error
		require.ErrorAs(t, err, &te)
		assert.Equal(t, []string{"GET", "PUT"}, te.Details())
	})
}

func TestRegexDispatcherRoot(t *testing.T) {
	rt := tadow.NewRouter("")
	require.NoError(t, rt.EndpointFunc("/", noop))
	require.NoError(t, rt.EndpointFunc("/{variable}", noop))
	require.NoError(t, rt.EndpointFunc("/items", noop))

	disp := tadow.NewRegexDispatcher()

	route, params, err := disp.Dispatch(rt.Table(), "GET", "/")
	require.NoError(t, err)
	assert.Equal(t, "/", route.Path())
	assert.Empty(t, params)

	route, _, err = disp.Dispatch(rt.Table(), "GET", "/items")
	require.NoError(t, err)
	assert.Equal(t, "/items", route.Path())

	route, params, err = disp.Dispatch(rt.Table(), "GET", "/other")
	require.NoError(t, err)
	assert.Equal(t, "/{variable}", route.Path())
	assert.Equal(t, map[string]string{"variable": "other"}, params)
}
