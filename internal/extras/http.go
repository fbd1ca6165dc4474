// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package extras

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/netinv/internal/platform/middleware"
	requestutil "github.com/taibuivan/netinv/internal/platform/request"
	"github.com/taibuivan/netinv/internal/platform/respond"
	"github.com/taibuivan/netinv/internal/platform/sec"
	"github.com/taibuivan/netinv/internal/platform/validate"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/pagination"
)

// Handler serves /api/v1/extras/tags and /api/v1/extras/journal-entries.
type Handler struct {
	tags    *TagService
	journal *JournalService
}

// NewHandler creates a Handler.
func NewHandler(tags *TagService, journal *JournalService) *Handler {
	return &Handler{tags: tags, journal: journal}
}

// RegisterTagRoutes mounts the tag endpoints.
func (handler *Handler) RegisterTagRoutes(router chi.Router) {
	router.Get("/", handler.listTags)
	router.Get("/{id}", handler.getTag)

	router.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createTag)
	router.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateTag)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteTag)
}

// RegisterJournalRoutes mounts the journal entry endpoints.
func (handler *Handler) RegisterJournalRoutes(router chi.Router) {
	router.Get("/", handler.listEntries)
	router.Get("/{id}", handler.getEntry)

	router.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createEntry)
	router.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateEntry)
	router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteEntry)
}

// decodeBody reads a write body into attributes.
func decodeBody(writer http.ResponseWriter, request *http.Request) (serializer.Attrs, error) {
	body, err := requestutil.Body(writer, request)
	if err != nil {
		return nil, err
	}
	return serializer.DecodeAttrs(body)
}

// # Tags

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	tags, total, err := handler.tags.List(request.Context(), page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, serializer.RepresentAll(tags), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.tags.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(tag))
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.tags.Create(request.Context(), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, serializer.Represent(tag))
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag, err := handler.tags.Update(request.Context(), id, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(tag))
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.tags.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Journal entries

func (handler *Handler) listEntries(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := JournalFilter{AssignedObjectType: query.Get("assigned_object_type")}
	if raw := query.Get("assigned_object_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(writer, request, validate.FieldError("assigned_object_id", "Must be an integer"))
			return
		}
		filter.AssignedObjectID = id
	}

	entries, total, err := handler.journal.List(request.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, serializer.RepresentAll(entries), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getEntry(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.journal.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(entry))
}

func (handler *Handler) createEntry(writer http.ResponseWriter, request *http.Request) {
	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.journal.Create(request.Context(), requestutil.Operator(request), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, serializer.Represent(entry))
}

func (handler *Handler) updateEntry(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.journal.Update(request.Context(), id, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(entry))
}

func (handler *Handler) deleteEntry(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.journal.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
