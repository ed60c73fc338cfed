package app

import (
	"github.com/go-chi/oauth"
	"github.com/mlotta/formforge/config"
	"github.com/mlotta/formforge/storage"
	"github.com/mlotta/formforge/store"
	"github.com/mlotta/formforge/submit"
)

// App bundles the shared collaborators the controllers need.
type App struct {
	*store.Store
	*oauth.BearerServer
	config.Config

	Files       storage.Store
	Submissions *submit.Pipeline
}
