// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/netinv/internal/platform/middleware"
	requestutil "github.com/taibuivan/netinv/internal/platform/request"
	"github.com/taibuivan/netinv/internal/platform/respond"
	"github.com/taibuivan/netinv/internal/platform/sec"
	"github.com/taibuivan/netinv/internal/serializer"
	"github.com/taibuivan/netinv/pkg/pagination"
	"github.com/taibuivan/netinv/pkg/query"
)

// Handler serves /api/v1/dcim/sites and /api/v1/dcim/devices.
type Handler struct {
	service *Service
}

// NewHandler creates a Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the dcim endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/sites", func(r chi.Router) {
		r.Get("/", handler.listSites)
		r.Get("/{id}", handler.getSite)

		r.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createSite)
		r.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateSite)
		r.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteSite)
	})

	router.Route("/devices", func(r chi.Router) {
		r.Get("/", handler.listDevices)
		r.Get("/{id}", handler.getDevice)

		r.With(middleware.RequireRole(sec.RoleEditor)).Post("/", handler.createDevice)
		r.With(middleware.RequireRole(sec.RoleEditor)).Patch("/{id}", handler.updateDevice)
		r.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteDevice)
	})
}

func decodeBody(writer http.ResponseWriter, request *http.Request) (serializer.Attrs, error) {
	body, err := requestutil.Body(writer, request)
	if err != nil {
		return nil, err
	}
	return serializer.DecodeAttrs(body)
}

// # Sites

func (handler *Handler) listSites(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	sites, total, err := handler.service.ListSites(request.Context(), page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, serializer.RepresentAll(sites), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.GetSite(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(site))
}

func (handler *Handler) createSite(writer http.ResponseWriter, request *http.Request) {
	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	site, err := handler.service.CreateSite(request.Context(), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, serializer.Represent(site))
}

func (handler *Handler) updateSite(writer http.ResponseWriter, request *http.Request) {
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

	site, err := handler.service.UpdateSite(request.Context(), id, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(site))
}

func (handler *Handler) deleteSite(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteSite(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Devices

func (handler *Handler) listDevices(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	values := request.URL.Query()

	filter := DeviceFilter{
		SiteIDs:  query.Int64Slice(values, "site_id"),
		Statuses: query.StringSlice(values, "status"),
	}

	devices, total, err := handler.service.ListDevices(request.Context(), filter, page.Limit, page.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, serializer.RepresentAll(devices), pagination.NewMeta(page.Page, page.Limit, total))
}

func (handler *Handler) getDevice(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	device, err := handler.service.GetDevice(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(device))
}

func (handler *Handler) createDevice(writer http.ResponseWriter, request *http.Request) {
	data, err := decodeBody(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	device, err := handler.service.CreateDevice(request.Context(), data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, serializer.Represent(device))
}

func (handler *Handler) updateDevice(writer http.ResponseWriter, request *http.Request) {
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

	device, err := handler.service.UpdateDevice(request.Context(), id, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, serializer.Represent(device))
}

func (handler *Handler) deleteDevice(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDevice(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
