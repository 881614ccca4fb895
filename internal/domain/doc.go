// Package domain contains the core business entities of the application:
// destinations, the activities embedded in them, and the users who own them.
// It is independent of any storage or delivery mechanism.
package domain
