// Package service contains the application use cases. It coordinates
// domain objects, the guards and the store interfaces defined in
// internal/store to fulfill the API's operations.
//
// DestinationService owns the destination aggregate. ActivityService
// manages the activities embedded in it: every activity mutation loads the
// parent, checks the parent's owner, changes the embedded sequence in memory
// and writes the whole aggregate back in one store call.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete store implementation.
package service
