// Package tadowtest provides test helpers for tadowapp applications.
//
// It constructs the identical DI graph as [tadowapp.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	tadowtest.SetBaseEnv(t, 18081)
//	app := tadowtest.New[tadowapp.BaseEnvironment](t, routing)
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
package tadowtest

import (
	"testing"

	"github.com/advdv/tadow/tadowapp"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App for testing tadowapp applications.
type App struct {
	*fxtest.App
}

// New creates a test app with the same DI graph as [tadowapp.NewApp].
func New[E tadowapp.Environment](t testing.TB, routing any, opts ...tadowapp.Option) *App {
	return &App{App: fxtest.New(t, tadowapp.FxOptions[E](routing, opts...)...)}
}
