// Package fleet contains the vehicle registry entities the matcher filters
// on. Vehicles and their driver assignments are maintained by a fleet
// collaborator; the dispatch flow only reads them to find eligible
// driver/vehicle pairs and to pin the pair onto an order.
package fleet
