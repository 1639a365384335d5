package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestCalculator builds a calculator backed by the app's own collections,
// with fresh caches.
func newTestCalculator(app *pocketbase.PocketBase) *services.Calculator {
	store := pbstore.NewStore(app)
	return services.NewCalculator(store, store, store)
}
