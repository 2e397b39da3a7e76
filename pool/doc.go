// Package pool assembles the buffer trackers (tracker), recycling
// strategies (recycle), and deletion policies (delpolicy) into the public
// Pool[T] façade: add buffers, acquire one as a Handle[T], and close the
// pool according to whichever deletion policy it was configured with.
//
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package pool
