package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/contacts-api/internal/pipeline"
)

// Mount registers every API route on r.
func Mount(r chi.Router, p *pipeline.Pipeline, auth *AuthHandler, contacts *ContactHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Method(http.MethodPost, "/signup", p.Handler(auth.SignUpRoute()))
		r.Method(http.MethodPost, "/signin", p.Handler(auth.SignInRoute()))
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Method(http.MethodPost, "/", p.Handler(contacts.CreateRoute()))
		r.Method(http.MethodGet, "/{index}", p.Handler(contacts.GetRoute()))
		r.Method(http.MethodPut, "/{index}", p.Handler(contacts.UpdateRoute()))
	})
}
