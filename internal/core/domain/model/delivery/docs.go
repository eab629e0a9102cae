// Package delivery contains the Delivery aggregate, its owned Assignment
// entity, and the status and priority value objects. The aggregate binds one
// driver to one delivery at a time, keeps the fee fixed from creation, and
// guards completion so earnings are credited at most once.
package delivery
