// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dcim

import "context"

// DeviceFilter narrows device listings. Empty fields do not filter.
type DeviceFilter struct {
	SiteIDs  []int64
	Statuses []string
}

// Repository persists sites and devices.
type Repository interface {
	ListSites(ctx context.Context, limit, offset int) ([]*Site, int, error)
	GetSite(ctx context.Context, id int64) (*Site, error)
	// CreateSite inserts the site and its ASNs in one transaction.
	CreateSite(ctx context.Context, site *Site) error
	// UpdateSite saves the site, replacing its ASNs when replaceASNs is set.
	UpdateSite(ctx context.Context, site *Site, replaceASNs bool) error
	DeleteSite(ctx context.Context, id int64) error

	ListDevices(ctx context.Context, filter DeviceFilter, limit, offset int) ([]*Device, int, error)
	GetDevice(ctx context.Context, id int64) (*Device, error)
	CreateDevice(ctx context.Context, device *Device) error
	UpdateDevice(ctx context.Context, device *Device) error
	DeleteDevice(ctx context.Context, id int64) error
}
