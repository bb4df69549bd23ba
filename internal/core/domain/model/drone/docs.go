// Package drone provides the Drone aggregate owned by fleet operations.
//
// The lifecycle engine only cares about a drone's identity, its human code and
// whether it is Active; battery, delivery counters and distance are carried for
// the fleet dashboard and updated by operators.
package drone
