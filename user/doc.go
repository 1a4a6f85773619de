// Package user holds registered account records and the itineraries they
// have booked. Authentication, credential storage and privilege checks
// live outside this core.
package user
