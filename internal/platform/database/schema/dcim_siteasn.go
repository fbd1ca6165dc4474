// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// DcimSiteASNTable represents the 'dcim.site_asn' join table
type DcimSiteASNTable struct {
	Table  string
	SiteID string
	ASN    string
}

// DcimSiteASN is the schema definition for dcim.site_asn
var DcimSiteASN = DcimSiteASNTable{
	Table:  "dcim.site_asn",
	SiteID: "site_id",
	ASN:    "asn",
}
