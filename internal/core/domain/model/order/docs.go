// Package order provides the order aggregate of the encomendas domain.
//
// The package includes:
//   - Order: the aggregate root holding the header, items, status and total
//   - Item: an order line whose total is quantity × quoted price
//   - Status: the lifecycle state machine
//
// Key business rules:
//   - The order total always equals the sum of its line totals
//   - Quantities are at least 1 and quoted prices strictly positive
//   - Clients, products and suppliers must belong to the order's tenant
//   - Status moves forward one step at a time or to cancelada; entering
//     cotacao needs at least one item
package order
