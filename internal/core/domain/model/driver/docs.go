// Package driver contains the driver availability aggregate.
//
// DriverAvailability tracks whether a driver can accept trips and is the
// write model the dispatch flow races over: marking a driver BUSY is the
// commit-time guard against double assignment. Every availability change
// appends a DriverStatusHistory record in the same transaction.
package driver
