// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package contenttype

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/netinv/internal/platform/respond"
)

type contentTypeView struct {
	ID string `json:"id"`
	ContentType
	Display string `json:"display"`
}

// Handler serves the content type catalogue and the record schemas.
type Handler struct {
	registry *Registry
}

// NewHandler creates a Handler.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes mounts the catalogue under the extras router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listContentTypes)
}

// ServeSchema lists the schema of every registered record type.
func (handler *Handler) ServeSchema(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.registry.Schemas())
}

func (handler *Handler) listContentTypes(writer http.ResponseWriter, _ *http.Request) {
	types := handler.registry.List()

	views := make([]contentTypeView, 0, len(types))
	for _, ct := range types {
		views = append(views, contentTypeView{ID: ct.Key(), ContentType: ct, Display: ct.Name})
	}
	respond.OK(writer, views)
}
