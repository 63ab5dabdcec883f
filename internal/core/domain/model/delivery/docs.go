// Package delivery models the one-to-one delivery record of an order.
//
// A delivery is created empty with the responsible set to "A definir" and is
// only changed through Finalize, a partial update. A delivery holding both a
// delivered date and the client's signature is complete; the application
// layer then marks its order as delivered.
package delivery
