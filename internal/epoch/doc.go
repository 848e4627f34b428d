// Package epoch converts calendar instants to Julian dates and Greenwich mean
// sidereal time. It sets the earth's orientation at lift-off; the trajectory
// itself stays planar.
package epoch
