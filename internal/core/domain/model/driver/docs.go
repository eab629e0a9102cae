// Package driver contains the Driver aggregate and its value objects.
// The aggregate guards the business rules of the driver lifecycle: a driver
// with open deliveries cannot be suspended or deactivated, and the earnings
// ledger only grows.
package driver
