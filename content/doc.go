// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package content defines the request body contract consumed by package
sender: a Provider describes a lazy, finite sequence of byte buffers,
and a Cursor adapts a Provider's iterator into the three-state view
(current chunk / advanceable / consumed) the sender's state machines
need.

Providers come in two flavors. A plain Provider can always be advanced
synchronously until it is consumed. An AsyncProvider may have more
content arrive later than is immediately available; it notifies a
single registered Listener when that happens, via OnDeferredContent.

Providers that hold a resource (an open file, for example) should
implement io.Closer; Cursor.Close will close them exactly once.
*/
package content
