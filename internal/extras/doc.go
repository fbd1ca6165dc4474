// Copyright (c) 2026 Netinv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package extras holds the cross-cutting records every inventory object can
carry: tags, journal entries and custom field data.

Journal entries point at their subject through a generic foreign key
(assigned_object_type, assigned_object_id). The serializer resolves that pair
through the content type registry before the entry's own rules run, so an
entry whose subject does not exist is still accepted, with the reference left
unresolved.
*/
package extras
