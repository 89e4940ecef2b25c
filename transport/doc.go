// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the narrow contract the sender requires
from whatever actually writes bytes onto a connection. How those bytes
reach a socket - buffering, TLS, HTTP/1.1 framing, HTTP/2 multiplexing
- is entirely the Transport implementation's concern; the sender only
ever calls SendHeaders once per exchange, then SendBodyChunk zero or
more times, each exactly once outstanding at a time, exactly as
package content's Cursor hands it buffers.
*/
package transport
