// Package services provides domain services that coordinate several aggregates.
//
// The package includes:
//   - DeliveryCompletionPolicy: decides how finalizing a delivery changes the
//     status of its order, including the override that forces entregue
package services
